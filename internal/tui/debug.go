package tui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/javiermolinar/weekpulse/internal/dateutil"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "weekpulse-debug.log"

var (
	debugLog  = newDiscardLogger()
	debugFile *os.File
)

func newDiscardLogger() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	l.SetLevel(log.PanicLevel)
	return l
}

// InitDebugLogger enables JSON debug logging to DebugLogPath.
// When disabled, every Log* call is a no-op.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = newDiscardLogger()
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	debugFile = f

	l := log.New()
	l.SetOutput(f)
	l.SetFormatter(&log.JSONFormatter{TimestampFormat: "15:04:05.000"})
	l.SetLevel(log.DebugLevel)
	debugLog = l

	debugLog.WithField("log_file", DebugLogPath).Info("debug start")
	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugFile == nil {
		return
	}
	debugLog.Info("debug end")
	_ = debugFile.Close()
	debugFile = nil
	debugLog = newDiscardLogger()
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.WithFields(log.Fields{
		"event": "key_press",
		"key":   msg.String(),
	}).Debug("key")
}

// LogMouse logs a mouse event and the tile it hit, if any.
func LogMouse(msg tea.MouseMsg, tile int) {
	debugLog.WithFields(log.Fields{
		"event":  "mouse",
		"x":      msg.X,
		"y":      msg.Y,
		"button": msg.String(),
		"tile":   tile,
	}).Debug("mouse")
}

// LogDateSelected logs a tile activation.
func LogDateSelected(key dateutil.DayKey, source string) {
	debugLog.WithFields(log.Fields{
		"event":  "date_selected",
		"date":   key.String(),
		"source": source,
	}).Debug("select")
}

// LogDataLoaded logs a completed data load.
func LogDataLoaded(day dateutil.DayKey, tasks, projects int) {
	debugLog.WithFields(log.Fields{
		"event":    "data_loaded",
		"today":    day.String(),
		"tasks":    tasks,
		"projects": projects,
	}).Debug("load")
}

// LogError logs an error.
func LogError(context string, err error) {
	debugLog.WithError(err).WithField("context", context).Error("error")
}
