package constants

import "time"

var AnalysisConfig = struct {
	Temperature     float32
	TopP            float32
	MaxOutputTokens int
	RequestTimeout  time.Duration
}{
	Temperature:     0.4, // lower temperature for consistent analytical output
	TopP:            0.95,
	MaxOutputTokens: 8192,
	RequestTimeout:  90 * time.Second,
}

var ModelDefaults = struct {
	Gemini string
	OpenAI string
}{
	Gemini: "gemini-2.5-flash",
	OpenAI: "gpt-4.1",
}

var AIInputLimits = struct {
	MaxTranscriptLength int
}{
	MaxTranscriptLength: 200_000,
}

var Downloader = struct {
	Binary       string
	OutputPrefix string
}{
	Binary:       "yt-dlp",
	OutputPrefix: "viral_clip",
}

var CacheTTL = struct {
	AnalysisResult time.Duration
	SourceMetadata time.Duration
}{
	AnalysisResult: 30 * time.Minute,
	SourceMetadata: 2 * time.Hour,
}

var RedisConfig = struct {
	ReadyTimeout time.Duration
}{
	ReadyTimeout: 5 * time.Second,
}

var HTTPConfig = struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}{
	ReadTimeout:     15 * time.Second,
	WriteTimeout:    120 * time.Second,
	IdleTimeout:     60 * time.Second,
	ShutdownTimeout: 10 * time.Second,
	MaxBodyBytes:    4 << 20,
}

var BatchConfig = struct {
	Concurrency int
}{
	Concurrency: 3,
}
