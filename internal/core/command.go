package core

// CommandKind enumerates the typed playback commands the command router
// accepts, per spec §4.1.
type CommandKind string

const (
	CmdTogglePlayback CommandKind = "toggle_playback"
	CmdNext           CommandKind = "next"
	CmdPrevious       CommandKind = "previous"
	CmdSeek           CommandKind = "seek"
	CmdVolume         CommandKind = "volume"
	CmdShuffle        CommandKind = "shuffle"
	CmdRepeat         CommandKind = "repeat"
	CmdStartPlayback  CommandKind = "start_playback"
	CmdTransferDevice CommandKind = "transfer_device"
	CmdAddToQueue     CommandKind = "add_to_queue"
	CmdToggleLike     CommandKind = "toggle_like"
)

// SeekMode distinguishes an absolute seek target from a relative delta.
type SeekMode int

const (
	SeekAbsolute SeekMode = iota
	SeekDelta
)

// VolumeMode distinguishes an absolute volume target from a relative delta.
type VolumeMode int

const (
	VolumeAbsolute VolumeMode = iota
	VolumeDelta
)

// PlaybackOffset selects where within a started context/uri list playback
// should begin, mirroring the remote API's "offset" object.
type PlaybackOffset struct {
	Position int    // index into URIs, when set
	URI      string // specific track/episode URI, when set
}

// Command is the typed, fully-populated instruction the UI layer hands to
// the router. Only the fields relevant to Kind are meaningful; this
// mirrors a tagged union via a flat struct, which is the idiomatic Go
// shape for a small closed command set that's constructed in one place
// (the key handlers) and consumed in one place (router.Route).
type Command struct {
	Kind CommandKind

	SeekMode   SeekMode
	SeekMS     int64 // absolute target or signed delta, per SeekMode

	VolumeMode VolumeMode
	VolumeStep int // absolute target or signed delta, per VolumeMode

	// StartPlayback fields.
	ContextURI string
	URIs       []string
	Offset     *PlaybackOffset

	// TransferDevice / AddToQueue / ToggleLike target id.
	TargetID string
}
