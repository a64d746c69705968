// Command fmradion is a software-defined FM broadcast, narrow-band FM and
// AM/SSB/CW/WSPR receiver: it reads I/Q samples from a tuner backend,
// demodulates the selected mode, and writes audio to a file or plays it
// live.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"
	"gopkg.in/natefinch/lumberjack.v2"
	"hz.tools/rf"

	"github.com/hzradio/fmradion/config"
	"github.com/hzradio/fmradion/decode"
	"github.com/hzradio/fmradion/dsp"
	"github.com/hzradio/fmradion/internal/advertise"
	"github.com/hzradio/fmradion/internal/tui"
	"github.com/hzradio/fmradion/pipeline"
	"github.com/hzradio/fmradion/pps"
	"github.com/hzradio/fmradion/sink"
	"github.com/hzradio/fmradion/tuner"
	"github.com/hzradio/fmradion/tuner/usbwatch"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		deviceType   = pflag.StringP("type", "t", "file", "tuner backend type (only \"file\" is supported)")
		device       = pflag.StringP("device", "d", "", "device path, or \"list\" to enumerate USB devices")
		mode         = pflag.StringP("mode", "m", "fm", "demodulation mode: fm, nbfm, am, dsb, usb, lsb, cw, wspr")
		configStr    = pflag.StringP("config", "c", "", "key=value,key=value configuration string")
		configFile   = pflag.String("config-file", "", "YAML profile file")
		rawFile      = pflag.StringP("raw", "R", "", "write raw S16LE audio to file")
		wavFile      = pflag.StringP("wav", "W", "", "write WAV audio to file")
		floatFile    = pflag.StringP("float32", "F", "", "write raw float32 audio to file")
		play         = pflag.IntP("play", "P", -1, "play audio on PortAudio device index (-2 disables)")
		mono         = pflag.BoolP("mono", "M", false, "disable stereo decoding")
		deemphasis   = pflag.StringP("deemphasis", "X", "na", "de-emphasis region: eu, na, none")
		pilotShift   = pflag.BoolP("pilot-shift", "U", false, "use cos(2x) pilot reference instead of sin(2x)")
		multipath    = pflag.Int("multipathfilter", 0, "multipath equalizer stages (0 disables)")
		ppsFile      = pflag.StringP("pps", "T", "", "write PPS events to file")
		gpioPPSChip  = pflag.String("gpio-pps-chip", "", "strobe a GPIO line on this chip (e.g. gpiochip0) on every PPS event")
		gpioPPSLine  = pflag.Int("gpio-pps-line", 0, "GPIO line offset to strobe for PPS, used with --gpio-pps-chip")
		quiet        = pflag.BoolP("quiet", "q", false, "suppress informational logging")
		status       = pflag.Bool("status", false, "show a live status dashboard")
		advertiseNet = pflag.Bool("advertise", false, "advertise this receiver over mDNS")
		logFile      = pflag.String("log-file", "", "rotate logs to this file instead of stderr")
	)
	pflag.Parse()

	logger := log.New(os.Stderr)
	if *logFile != "" {
		logger = log.New(&lumberjack.Logger{Filename: *logFile, MaxSize: 50, MaxBackups: 3})
	}
	if *quiet {
		logger.SetLevel(log.ErrorLevel)
	}

	if *device == "list" {
		return listDevices(logger)
	}

	if *configFile != "" {
		profile, err := config.LoadProfile(*configFile)
		if err != nil {
			logger.Error("loading config file", "err", err)
			return 1
		}
		if !pflag.CommandLine.Changed("mode") && profile.Mode != "" {
			*mode = profile.Mode
		}
		if !pflag.CommandLine.Changed("device") && profile.Device != "" {
			*device = profile.Device
		}
		if !pflag.CommandLine.Changed("mono") {
			*mono = !profile.Stereo
		}
		if !pflag.CommandLine.Changed("deemphasis") && profile.Deemphasis != "" {
			*deemphasis = profile.Deemphasis
		}
		if !pflag.CommandLine.Changed("pilot-shift") {
			*pilotShift = profile.PilotShift
		}
		if !pflag.CommandLine.Changed("multipathfilter") {
			*multipath = profile.MultipathStages
		}
	}

	m, err := parseMode(*mode)
	if err != nil {
		logger.Error("invalid mode", "err", err)
		return 1
	}

	deemphMicro := 75.0
	switch *deemphasis {
	case "eu":
		deemphMicro = decode.DeemphasisEU
	case "na":
		deemphMicro = decode.DeemphasisNA
	case "none":
		deemphMicro = 0
	}

	src, ifRate, err := openTuner(*deviceType, *device, *configStr, logger)
	if err != nil {
		logger.Error("opening tuner", "err", err)
		return 1
	}

	dec, err := pipeline.NewDecoder(pipeline.Config{
		Mode:            m,
		Stereo:          true,
		Mono:            *mono,
		DeemphasisMicro: deemphMicro,
		PilotShift:      *pilotShift,
		MultipathStages: *multipath,
	}, ifRate)
	if err != nil {
		logger.Error("building decoder", "err", err)
		return 1
	}

	out, err := openSink(*rawFile, *wavFile, *floatFile, *play, dec.Stereo())
	if err != nil {
		logger.Error("opening sink", "err", err)
		return 1
	}

	var ppsWriter *pps.Writer
	if *ppsFile != "" {
		f, err := os.Create(*ppsFile)
		if err != nil {
			logger.Error("opening PPS file", "err", err)
			return 1
		}
		defer f.Close()
		w, err := pps.NewWriter(f, time.Now())
		if err != nil {
			logger.Error("creating PPS writer", "err", err)
			return 1
		}
		defer w.Close()
		ppsWriter = w
	}

	var gpioPPS *sink.PPSGPIO
	if *gpioPPSChip != "" {
		g, err := sink.NewPPSGPIO(*gpioPPSChip, *gpioPPSLine, 10*time.Millisecond)
		if err != nil {
			logger.Error("opening GPIO PPS line", "err", err)
			return 1
		}
		defer g.Close()
		gpioPPS = g
	}

	var dashboard *tui.Program
	if *status {
		dashboard = tui.NewProgram()
		go dashboard.Run() //nolint:errcheck
	}

	if *advertiseNet {
		resp, err := advertise.Start(context.Background(), "fmradion", 0, m.String())
		if err != nil {
			logger.Warn("mDNS advertise failed", "err", err)
		} else {
			defer resp.Stop()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, unix.SIGINT, unix.SIGTERM)
	go func() {
		<-sig
		logger.Info("shutdown requested")
		cancel()
	}()

	driver := &pipeline.Driver{
		Tuner:   src,
		Decoder: dec,
		Sink:    out,
		Logger:  logger,
		OnPPS: func(sampleIndex uint64) {
			if ppsWriter != nil {
				ppsWriter.WriteEvent(dsp.PPSEvent{SampleIndex: sampleIndex}, ifRate)
			}
			if gpioPPS != nil {
				gpioPPS.Strobe()
			}
		},
	}
	if dashboard != nil {
		driver.OnStats = dashboard.Send
	}

	if err := driver.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("pipeline exited with error", "err", err)
		return 1
	}
	return 0
}

func parseMode(s string) (decode.Mode, error) {
	switch s {
	case "fm":
		return decode.ModeFM, nil
	case "nbfm":
		return decode.ModeNBFM, nil
	case "am":
		return decode.ModeAM, nil
	case "dsb":
		return decode.ModeDSB, nil
	case "usb":
		return decode.ModeUSB, nil
	case "lsb":
		return decode.ModeLSB, nil
	case "cw":
		return decode.ModeCW, nil
	case "wspr":
		return decode.ModeWSPR, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func openTuner(deviceType, device, configStr string, logger *log.Logger) (tuner.Tuner, float64, error) {
	kv := config.ParseKV(configStr)
	var freq rf.Hz
	if v, ok := kv["freq"]; ok {
		var hz int64
		if _, err := fmt.Sscanf(v, "%d", &hz); err == nil {
			freq = rf.Hz(hz)
		} else {
			logger.Warn("ignoring unparsable freq in --config", "value", v)
		}
	}

	switch deviceType {
	case "file":
		r := os.Stdin
		if device != "" && device != "-" {
			f, err := os.Open(device)
			if err != nil {
				return nil, 0, err
			}
			r = f
		}
		src := tuner.NewFileSource(r, 384000, freq, 4096)
		return src, 384000, nil
	default:
		return nil, 0, fmt.Errorf("unsupported tuner type %q (only \"file\" is wired from the CLI; hamlib rigs need a paired I/Q source built in code)", deviceType)
	}
}

func openSink(rawFile, wavFile, floatFile string, playDevice int, stereo bool) (sink.Writer, error) {
	channels := 1
	if stereo {
		channels = 2
	}
	switch {
	case rawFile != "":
		f, err := os.Create(rawFile)
		if err != nil {
			return nil, err
		}
		return sink.NewRawS16LE(f), nil
	case wavFile != "":
		f, err := os.Create(wavFile)
		if err != nil {
			return nil, err
		}
		return sink.NewWAV(f, channels, 48000)
	case floatFile != "":
		f, err := os.Create(floatFile)
		if err != nil {
			return nil, err
		}
		return sink.NewRawFloat32(f), nil
	case playDevice != -2:
		dev := playDevice
		if dev < -1 {
			dev = -1
		}
		return sink.NewPortAudio(dev, channels, 48000)
	default:
		return nil, fmt.Errorf("no output sink configured")
	}
}

func listDevices(logger *log.Logger) int {
	devices, err := usbwatch.List()
	if err != nil {
		logger.Error("listing USB devices (requires udev access; run on the target host)", "err", err)
		return 1
	}
	for _, d := range devices {
		logger.Info("usb device", "devpath", d.DevPath, "vendor", d.VendorID, "product", d.ProductID, "serial", d.Serial)
	}
	return 0
}
