package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// Logger wraps arbor.ILogger so packages share one logging surface.
type Logger struct {
	arbor.ILogger
}

// discardWriter drops every event. Installed explicitly so a silent logger
// never falls through to globally registered writers.
type discardWriter struct{}

func (w *discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (w *discardWriter) WithLevel(_ log.Level) writers.IWriter { return w }
func (w *discardWriter) GetFilePath() string                   { return "" }
func (w *discardWriter) Close() error                          { return nil }

// lineWriter renders arbor's JSON events as single text lines on out.
type lineWriter struct {
	out   io.Writer
	level log.Level
}

func (w *lineWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.level {
		return len(p), nil
	}

	keys := make([]string, 0, len(evt.Fields))
	for k := range evt.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	line := evt.Message
	for _, k := range keys {
		line += fmt.Sprintf(" %s=%v", k, evt.Fields[k])
	}
	if evt.Error != "" {
		line += " error=" + evt.Error
	}
	if _, err := io.WriteString(w.out, line+"\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *lineWriter) WithLevel(level log.Level) writers.IWriter {
	w.level = level
	return w
}

func (w *lineWriter) GetFilePath() string { return "" }
func (w *lineWriter) Close() error        { return nil }

// jsonWriter passes arbor's JSON events through to out, one per line.
type jsonWriter struct {
	out   io.Writer
	level log.Level
}

func (w *jsonWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err == nil && evt.Level < w.level {
		return len(p), nil
	}

	line := bytes.TrimRight(p, "\n")
	if _, err := w.out.Write(append(line[:len(line):len(line)], '\n')); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *jsonWriter) WithLevel(level log.Level) writers.IWriter {
	w.level = level
	return w
}

func (w *jsonWriter) GetFilePath() string { return "" }
func (w *jsonWriter) Close() error        { return nil }

// isJSONFormat reports whether format selects JSON console output.
// Anything else, including "", means text.
func isJSONFormat(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), "json")
}

// consoleWriter returns the writer for format on out.
func consoleWriter(format string, out io.Writer) writers.IWriter {
	if isJSONFormat(format) {
		return &jsonWriter{out: out, level: log.TraceLevel}
	}
	return &lineWriter{out: out, level: log.TraceLevel}
}

// NewLoggerFromConfig creates a logger from cfg. The console writer always
// targets stderr: stdout belongs to the stdio transport. Format "json"
// writes one JSON event per line; any other value writes text.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	level := cfg.Level
	if level == "" {
		level = "info"
	}

	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"console"}
	}

	jsonConsole := isJSONFormat(cfg.Format)

	l := arbor.NewLogger()
	if jsonConsole {
		for _, out := range outputs {
			if out == "console" {
				l = l.WithWriters([]writers.IWriter{consoleWriter(cfg.Format, os.Stderr)})
				break
			}
		}
	}
	for _, out := range outputs {
		switch out {
		case "console":
			if jsonConsole {
				continue
			}
			l = l.WithConsoleWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				Writer:     os.Stderr,
				TimeFormat: timeFormat,
			})
		case "file":
			filePath := cfg.FilePath
			if filePath == "" {
				filePath = "logs/testdino-mcp.log"
			}
			maxSize := int64(cfg.MaxSizeMB) * 1024 * 1024
			if maxSize <= 0 {
				maxSize = 10 * 1024 * 1024
			}
			maxBackups := cfg.MaxBackups
			if maxBackups <= 0 {
				maxBackups = 5
			}
			l = l.WithFileWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeFile,
				FileName:   filePath,
				MaxSize:    maxSize,
				MaxBackups: maxBackups,
				TimeFormat: timeFormat,
			})
		}
	}

	l = l.WithMemoryWriter(models.WriterConfiguration{
		Type: models.LogWriterTypeMemory,
	}).WithLevelFromString(level)

	return &Logger{ILogger: l}
}

// NewLoggerWithOutput creates a logger that writes plain text lines to w.
// The writer replaces the globally registered console writer.
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	arbor.RegisterWriter(arbor.WRITER_CONSOLE, consoleWriter("text", w))

	arborLogger := arbor.NewLogger().
		WithMemoryWriter(models.WriterConfiguration{
			Type: models.LogWriterTypeMemory,
		}).
		WithLevelFromString(level)
	return &Logger{ILogger: arborLogger}
}

// NewSilentLogger creates a logger that discards all output.
func NewSilentLogger() *Logger {
	arborLogger := arbor.NewLogger().WithWriters([]writers.IWriter{&discardWriter{}})
	return &Logger{ILogger: arborLogger}
}

// WithCorrelationId returns a copy of the logger tagged with id.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}
