package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/go-audio/wav"
	"github.com/tcolgate/mp3"

	"github.com/wildhavenhq/media/model"
)

// ExtractAudioMetadata reads stream info and tags from an audio file. Every
// field is best-effort: a field that cannot be determined stays zero and the
// call still succeeds. An error means the container itself could not be
// parsed.
func ExtractAudioMetadata(path string) (model.AudioMetadata, error) {
	meta, err := probeAudio(path)
	if err != nil {
		return meta, err
	}

	// Tags are optional, their absence never fails the call.
	readTags(path, &meta)

	return meta, nil
}

// probeAudio extracts duration, bitrate, sample rate and channel count for
// the containers we can walk (MP3 frames, WAV fmt chunk). For the rest it
// only confirms the container is recognized.
func probeAudio(path string) (model.AudioMetadata, error) {
	var meta model.AudioMetadata

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return probeMP3(path)
	case ".wav":
		return probeWAV(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return meta, err
	}
	defer f.Close()

	// dhowden/tag identifies OGG, FLAC and MP4-family containers from their
	// leading bytes. No tags in a valid container is fine.
	if _, err := tag.ReadFrom(f); err != nil && !errors.Is(err, tag.ErrNoTagsFound) {
		return meta, fmt.Errorf("unrecognized audio container: %w", err)
	}

	return meta, nil
}

func probeMP3(path string) (model.AudioMetadata, error) {
	var meta model.AudioMetadata

	f, err := os.Open(path)
	if err != nil {
		return meta, err
	}
	defer f.Close()

	dec := mp3.NewDecoder(f)

	var frame mp3.Frame
	var skipped int
	var duration float64
	frames := 0

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			// A truncated trailing frame after valid audio is tolerable.
			if frames > 0 {
				break
			}
			return meta, fmt.Errorf("decoding mp3 frames: %w", err)
		}

		if frames == 0 {
			hdr := frame.Header()
			meta.Bitrate = int(hdr.BitRate()) / 1000
			meta.SampleRate = int(hdr.SampleRate())
			if hdr.ChannelMode() == mp3.SingleChannel {
				meta.Channels = 1
			} else {
				meta.Channels = 2
			}
		}

		duration += frame.Duration().Seconds()
		frames++
	}

	if frames == 0 {
		return meta, errors.New("no mp3 frames found")
	}

	meta.Duration = duration
	return meta, nil
}

func probeWAV(path string) (model.AudioMetadata, error) {
	var meta model.AudioMetadata

	f, err := os.Open(path)
	if err != nil {
		return meta, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return meta, fmt.Errorf("reading wav header: %w", err)
	}
	if dec.SampleRate == 0 || dec.NumChans == 0 {
		return meta, errors.New("wav file has no stream info")
	}

	meta.SampleRate = int(dec.SampleRate)
	meta.Channels = int(dec.NumChans)
	meta.Bitrate = int(dec.AvgBytesPerSec) * 8 / 1000

	if d, err := dec.Duration(); err == nil {
		meta.Duration = d.Seconds()
	}

	return meta, nil
}

// readTags fills title/artist/album/genre/year/track from whatever tag
// container dhowden/tag finds. Missing tags leave the fields untouched.
func readTags(path string, meta *model.AudioMetadata) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return
	}

	meta.Title = m.Title()
	meta.Artist = m.Artist()
	meta.Album = m.Album()
	meta.Genre = m.Genre()
	meta.Year = m.Year()
	meta.TrackNumber, _ = m.Track()
}
