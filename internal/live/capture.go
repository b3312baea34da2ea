package live

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/config"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/pkg/executor"
)

// ffmpegCapturer records audio windows through ffmpeg's device capture,
// using the platform input format (pulse, avfoundation or dshow).
type ffmpegCapturer struct {
	cfg      *config.LiveConfig
	binary   string
	executor executor.Executor
	logger   logger.Logger

	goos    string
	devices []string
}

// NewFFmpegCapturer creates a Capturer backed by the ffmpeg CLI.
func NewFFmpegCapturer(cfg *config.LiveConfig, ffmpegCfg *config.FFmpegConfig, exec executor.Executor, log logger.Logger) Capturer {
	return &ffmpegCapturer{
		cfg:      cfg,
		binary:   ffmpegCfg.BinaryPath,
		executor: exec,
		logger:   log,
		goos:     runtime.GOOS,
	}
}

var (
	reAVFoundationDevice = regexp.MustCompile(`\[(\d+)\]\s+(.+)$`)
	reDshowDevice        = regexp.MustCompile(`"(.+)"\s+\(audio\)`)
)

// Devices lists the capture devices the platform input format exposes.
// ffmpeg prints device listings on stderr and exits non-zero, so on
// darwin and windows the listing arrives folded into the executor error.
func (c *ffmpegCapturer) Devices(ctx context.Context) ([]string, error) {
	if c.devices != nil {
		return c.devices, nil
	}

	var out string
	var err error
	switch c.goos {
	case "darwin":
		out, err = c.executor.Execute(ctx, c.binary, "-f", "avfoundation", "-list_devices", "true", "-i", "")
		if err != nil {
			out = err.Error()
		}
		c.devices = parseAVFoundationDevices(out)
	case "windows":
		out, err = c.executor.Execute(ctx, c.binary, "-list_devices", "true", "-f", "dshow", "-i", "dummy")
		if err != nil {
			out = err.Error()
		}
		c.devices = parseNamedDevices(out, reDshowDevice)
	default:
		out, err = c.executor.Execute(ctx, c.binary, "-sources", "pulse")
		if err != nil {
			return nil, fmt.Errorf("list pulse sources: %w", err)
		}
		c.devices = parsePulseSources(out)
	}

	c.logger.Debug(ctx, "Found %d capture devices", len(c.devices))
	return c.devices, nil
}

// Capture records one fixed-length window from the selected device into
// destPath as 16kHz mono PCM, the format the recognizer expects.
func (c *ffmpegCapturer) Capture(ctx context.Context, destPath string) error {
	input, err := c.inputArgs(ctx)
	if err != nil {
		return err
	}

	args := append(input,
		"-t", strconv.Itoa(c.cfg.WindowSeconds),
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		destPath,
	)

	if _, err := c.executor.Execute(ctx, c.binary, args...); err != nil {
		return fmt.Errorf("ffmpeg capture: %w", err)
	}
	return nil
}

func (c *ffmpegCapturer) inputArgs(ctx context.Context) ([]string, error) {
	switch c.goos {
	case "darwin":
		return []string{"-f", "avfoundation", "-i", fmt.Sprintf(":%d", c.cfg.DeviceIndex)}, nil
	case "windows":
		// dshow addresses devices by name, so resolve the index first.
		devices, err := c.Devices(ctx)
		if err != nil {
			return nil, err
		}
		return []string{"-f", "dshow", "-i", "audio=" + devices[c.cfg.DeviceIndex]}, nil
	default:
		if c.cfg.Source == "system" {
			devices, err := c.Devices(ctx)
			if err != nil {
				return nil, err
			}
			return []string{"-f", "pulse", "-i", devices[c.cfg.DeviceIndex] + ".monitor"}, nil
		}
		return []string{"-f", "pulse", "-i", strconv.Itoa(c.cfg.DeviceIndex)}, nil
	}
}

// parseAVFoundationDevices picks the audio section of the listing; the
// video section above it uses the same indexed format.
func parseAVFoundationDevices(listing string) []string {
	var devices []string
	inAudio := false
	for _, line := range strings.Split(listing, "\n") {
		if strings.Contains(line, "audio devices") {
			inAudio = true
			continue
		}
		if strings.Contains(line, "video devices") {
			inAudio = false
			continue
		}
		if !inAudio {
			continue
		}
		if m := reAVFoundationDevice.FindStringSubmatch(line); m != nil {
			devices = append(devices, strings.TrimSpace(m[2]))
		}
	}
	return devices
}

func parseNamedDevices(listing string, re *regexp.Regexp) []string {
	var devices []string
	for _, line := range strings.Split(listing, "\n") {
		if m := re.FindStringSubmatch(line); m != nil {
			devices = append(devices, m[1])
		}
	}
	return devices
}

// parsePulseSources reads `ffmpeg -sources pulse` output: one indented
// line per source, name first, default source marked with '*'.
func parsePulseSources(out string) []string {
	var devices []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if line == "" || strings.HasPrefix(line, "Auto-detected") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			devices = append(devices, fields[0])
		}
	}
	return devices
}
