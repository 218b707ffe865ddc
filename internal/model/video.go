// Package model holds the immutable value types shared across ytgrab.
// Nothing here performs I/O; values are constructed once and never mutated.
package model

// VideoInfo describes a single video as reported by a provider backend.
// Formats preserves provider order and is non-empty whenever a metadata
// fetch succeeds; treat the slice as read-only.
type VideoInfo struct {
	ID       string
	Title    string
	Duration int // seconds; 0 if unknown
	Formats  []FormatInfo
}

// FormatInfo describes one encoding/container variant of a video.
// Zero values mean unknown: Height is 0 for audio-only streams,
// BitrateBps and Filesize are 0 when the provider does not report them.
type FormatInfo struct {
	ID         string // unique within its parent VideoInfo
	Ext        string // container extension, e.g. "mp4"
	Height     int    // vertical resolution in px
	BitrateBps int64  // bytes per second
	Filesize   int64  // approximate size in bytes
	VCodec     string // "none" when the stream carries no video
	ACodec     string // "none" when the stream carries no audio
}

// HasVideo reports whether the format carries a video track.
func (f FormatInfo) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != "none"
}

// HasAudio reports whether the format carries an audio track.
func (f FormatInfo) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != "none"
}

// IsAudioOnly reports whether the format is an audio-only stream.
func (f FormatInfo) IsAudioOnly() bool {
	return !f.HasVideo() && f.HasAudio()
}
