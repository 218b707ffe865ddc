package native

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kkdai/youtube/v2"

	"ytgrab/internal/dlerr"
)

func TestToFormatInfo(t *testing.T) {
	tests := []struct {
		name       string
		in         youtube.Format
		wantExt    string
		wantVCodec string
		wantACodec string
		wantBps    int64
	}{
		{
			name: "muxed mp4",
			in: youtube.Format{
				ItagNo:        22,
				MimeType:      `video/mp4; codecs="avc1.64001F, mp4a.40.2"`,
				Bitrate:       4_000_000,
				ContentLength: 12345,
				Height:        720,
				AudioChannels: 2,
			},
			wantExt:    "mp4",
			wantVCodec: "avc1.64001F",
			wantACodec: "mp4a.40.2",
			wantBps:    500_000,
		},
		{
			name: "video-only webm",
			in: youtube.Format{
				ItagNo:   248,
				MimeType: `video/webm; codecs="vp9"`,
				Bitrate:  1_600_000,
				Height:   1080,
			},
			wantExt:    "webm",
			wantVCodec: "vp9",
			wantACodec: "none",
			wantBps:    200_000,
		},
		{
			name: "audio-only m4a",
			in: youtube.Format{
				ItagNo:        140,
				MimeType:      `audio/mp4; codecs="mp4a.40.2"`,
				Bitrate:       128_000,
				AudioChannels: 2,
			},
			wantExt:    "m4a",
			wantVCodec: "none",
			wantACodec: "mp4a.40.2",
			wantBps:    16_000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toFormatInfo(tt.in)
			if got.Ext != tt.wantExt {
				t.Errorf("Ext = %q, want %q", got.Ext, tt.wantExt)
			}
			if got.VCodec != tt.wantVCodec {
				t.Errorf("VCodec = %q, want %q", got.VCodec, tt.wantVCodec)
			}
			if got.ACodec != tt.wantACodec {
				t.Errorf("ACodec = %q, want %q", got.ACodec, tt.wantACodec)
			}
			if got.BitrateBps != tt.wantBps {
				t.Errorf("BitrateBps = %d, want %d", got.BitrateBps, tt.wantBps)
			}
		})
	}
}

func TestToFormatInfoAudioOnlyIsAudioOnly(t *testing.T) {
	f := toFormatInfo(youtube.Format{
		ItagNo:        251,
		MimeType:      `audio/webm; codecs="opus"`,
		AudioChannels: 2,
	})
	if !f.IsAudioOnly() {
		t.Fatalf("expected audio-only classification, got %+v", f)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want dlerr.Kind
	}{
		{"private video", errors.New("status: ERROR(Private video. Sign in if you've been granted access to this video)"), dlerr.KindUnavailable},
		{"age restriction", errors.New("can't bypass age restriction: embedding of this video has been disabled"), dlerr.KindAuth},
		{"unavailable", errors.New("status: ERROR(This video is unavailable)"), dlerr.KindUnavailable},
		{"login required", errors.New("login required to confirm your age"), dlerr.KindAuth},
		{"dns failure", errors.New("dial tcp: lookup youtube.com: no such host"), dlerr.KindNetwork},
		{"timeout", errors.New("context timeout while reading body"), dlerr.KindNetwork},
		{"something else", errors.New("cipher not found"), dlerr.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if !dlerr.IsKind(got, tt.want) {
				kind, _ := dlerr.KindOf(got)
				t.Errorf("classify(%q) kind = %v, want %v", tt.err, kind, tt.want)
			}
			if !strings.Contains(got.Error(), tt.err.Error()) {
				t.Errorf("classified error %q lost original message %q", got, tt.err)
			}
		})
	}
}

func TestClassifyPassesCancellation(t *testing.T) {
	if got := classify(context.Canceled); !errors.Is(got, context.Canceled) {
		t.Fatalf("classify(context.Canceled) = %v, want pass-through", got)
	}
	if got := classify(context.DeadlineExceeded); !errors.Is(got, context.DeadlineExceeded) {
		t.Fatalf("classify(context.DeadlineExceeded) = %v, want pass-through", got)
	}
}
