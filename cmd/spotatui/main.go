// Command spotatui is a terminal client for Spotify, coordinating
// playback between a local Sonos device and the Spotify Web API.
package main

import "github.com/spotatui/spotatui/internal/cli"

func main() {
	cli.Execute()
}
