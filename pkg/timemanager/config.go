package timemanager

// A Config wraps the external programs the time manager pipeline relies on
type Config struct {
	// Path to the `tm` binary
	TMPath string

	// Path to `ffmpeg`, used to remux the HLS stream into MPEG-TS
	FFmpegPath string

	// Path to `mplayer`
	MPlayerPath string

	// Software volume passed to mplayer's volume filter
	Volume int

	// mplayer cache size in kilobytes
	CacheKB int
}

func (c Config) tm() string {
	if c.TMPath != "" {
		return c.TMPath
	}
	return "tm"
}

func (c Config) ffmpeg() string {
	if c.FFmpegPath != "" {
		return c.FFmpegPath
	}
	return "ffmpeg"
}

func (c Config) mplayer() string {
	if c.MPlayerPath != "" {
		return c.MPlayerPath
	}
	return "mplayer"
}

func (c Config) volume() int {
	if c.Volume != 0 {
		return c.Volume
	}
	return 5
}

func (c Config) cache() int {
	if c.CacheKB > 0 {
		return c.CacheKB
	}
	return 256
}
