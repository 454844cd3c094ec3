package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type CameraConfig struct {
	DeviceIndex int `mapstructure:"device_index"`
	Width       int `mapstructure:"width"`
	Height      int `mapstructure:"height"`
	FPS         int `mapstructure:"fps"`
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

type DetectionConfig struct {
	IntervalMS             int     `mapstructure:"interval_ms"`
	OCRConfidenceThreshold float64 `mapstructure:"ocr_confidence_threshold"`
	StabilityFrames        int     `mapstructure:"stability_frames"`
	MinTextLength          int     `mapstructure:"min_text_length"`
}

func (d DetectionConfig) Interval() time.Duration {
	return time.Duration(d.IntervalMS) * time.Millisecond
}

type OCRConfig struct {
	Languages []string `mapstructure:"languages"`
}

type OllamaConfig struct {
	URLs  []string `mapstructure:"urls"`
	Model string   `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type DescriberConfig struct {
	Provider string       `mapstructure:"provider"`
	Prompt   string       `mapstructure:"prompt"`
	Ollama   OllamaConfig `mapstructure:"ollama"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
}

type SpeechConfig struct {
	PiperURL       string   `mapstructure:"piper_url"`
	Voice          string   `mapstructure:"voice"`
	Player         []string `mapstructure:"player"`
	MaxSpokenWords int      `mapstructure:"max_spoken_words"`
	TimeoutSecs    int      `mapstructure:"timeout_secs"`
}

func (s SpeechConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

type Settings struct {
	Server    ServerConfig    `mapstructure:"server"`
	Camera    CameraConfig    `mapstructure:"camera"`
	Detection DetectionConfig `mapstructure:"detection"`
	OCR       OCRConfig       `mapstructure:"ocr"`
	Describer DescriberConfig `mapstructure:"describer"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	Env       string          `mapstructure:"env"`
	Debug     bool            `mapstructure:"debug"`
}

func Load() (*Settings, error) {
	viper.SetConfigName("config_" + genEnv())
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	settings.applyDefaults()

	return &settings, nil
}

// applyDefaults fills zero-valued fields so a minimal config file still yields a
// runnable system. Values mirror the tuning the pipeline was calibrated with.
func (s *Settings) applyDefaults() {
	if s.Server.Addr == "" {
		s.Server.Addr = ":5000"
	}
	if s.Camera.Width == 0 {
		s.Camera.Width = 640
	}
	if s.Camera.Height == 0 {
		s.Camera.Height = 480
	}
	if s.Camera.FPS == 0 {
		s.Camera.FPS = 30
	}
	if s.Camera.JPEGQuality == 0 {
		s.Camera.JPEGQuality = 85
	}
	if s.Detection.IntervalMS == 0 {
		s.Detection.IntervalMS = 500
	}
	if s.Detection.OCRConfidenceThreshold == 0 {
		s.Detection.OCRConfidenceThreshold = 0.6
	}
	if s.Detection.StabilityFrames == 0 {
		s.Detection.StabilityFrames = 2
	}
	if s.Detection.MinTextLength == 0 {
		s.Detection.MinTextLength = 3
	}
	if len(s.OCR.Languages) == 0 {
		s.OCR.Languages = []string{"eng"}
	}
	if s.Describer.Provider == "" {
		s.Describer.Provider = "ollama"
	}
	if s.Describer.Prompt == "" {
		s.Describer.Prompt = "Describe the scene in one short sentence."
	}
	if len(s.Describer.Ollama.URLs) == 0 {
		s.Describer.Ollama.URLs = []string{"http://localhost:11434"}
	}
	if s.Describer.Ollama.Model == "" {
		s.Describer.Ollama.Model = "llava:7b"
	}
	if s.Speech.PiperURL == "" {
		s.Speech.PiperURL = "http://localhost:5003"
	}
	if len(s.Speech.Player) == 0 {
		s.Speech.Player = []string{"aplay", "-q"}
	}
	if s.Speech.MaxSpokenWords == 0 {
		s.Speech.MaxSpokenWords = 15
	}
	if s.Speech.TimeoutSecs == 0 {
		s.Speech.TimeoutSecs = 30
	}
}

func genEnv() string {
	env := viper.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
