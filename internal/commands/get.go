package commands

import (
	"context"

	"github.com/xymaxim/ypdl/internal/app"
)

type Get struct {
	CommonFlags
	URL               string `arg:"" optional:"" help:"Video or playlist URL (asked if omitted)"`
	Format            string `help:"Output format, mp4 or mp3 (asked if omitted)" short:"f"`
	Dir               string `help:"Destination directory (asked if omitted)" short:"d"`
	Limit             int    `help:"Number of playlist items to download (asked if omitted)" short:"n"`
	AudioCodec        string `help:"Codec to transcode audio to" default:"mp3" enum:"mp3,aac,m4a,opus,vorbis,flac,wav" env:"YPDL_AUDIO_CODEC"`
	AudioQuality      string `help:"Audio bitrate in kbps" default:"192" env:"YPDL_AUDIO_QUALITY"`
	FFmpegLocation    string `help:"Location of the ffmpeg binary or its directory" name:"ffmpeg-location" env:"YPDL_FFMPEG_LOCATION"`
	RestrictFilenames bool   `help:"Restrict file names to ASCII characters" env:"YPDL_RESTRICT_FILENAMES"`
}

func (c *Get) Run(ctx context.Context) error {
	a := app.NewApp(&app.Config{
		YtdlpPath:         c.Ytdlp,
		FFmpegLocation:    c.FFmpegLocation,
		AudioCodec:        c.AudioCodec,
		AudioQuality:      c.AudioQuality,
		RestrictFilenames: c.RestrictFilenames,
		Debug:             c.Debug,
	})

	if err := checkYtdlp(c.Ytdlp); err != nil {
		return err
	}

	return a.Get(ctx, app.Options{
		URL:    c.URL,
		Format: c.Format,
		Dir:    c.Dir,
		Limit:  c.Limit,
	})
}
