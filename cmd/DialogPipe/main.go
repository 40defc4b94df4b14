// DialogPipe is a tag-driven dialogue engine with a scripted support bot on
// top. This command hosts the interactive loop: it reads utterances from
// stdin, feeds them to the engine one at a time and prints the responses.
// The loop owns the two magic exit commands that terminate the whole
// session; a conversation "finish" merely returns the bot to its idle state.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/BTreeMap/DialogPipe/internal/directory"
	"github.com/BTreeMap/DialogPipe/internal/engine"
	"github.com/BTreeMap/DialogPipe/internal/script"
	"github.com/BTreeMap/DialogPipe/internal/session"
	"github.com/BTreeMap/DialogPipe/internal/util"
)

// Default configuration constants
const (
	// DefaultDirectoryDriver selects the built-in static faculty directory
	DefaultDirectoryDriver = "static"
	// BotName is the display name printed before every response
	BotName = "DialogPipe"
)

// exitCommands terminate the session (not just the current conversation).
var exitCommands = map[string]bool{
	"exit": true,
	"quit": true,
}

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	dir, err := buildDirectory(flags)
	if err != nil {
		slog.Error("Failed to build entity directory", "error", err)
		os.Exit(1)
	}

	scr, err := buildScript(dir, flags)
	if err != nil {
		slog.Error("Failed to build domain script", "error", err)
		os.Exit(1)
	}

	eng, err := engine.New(scr)
	if err != nil {
		slog.Error("Failed to construct dialogue engine", "error", err)
		os.Exit(1)
	}

	slog.Info("DialogPipe ready", "directory_driver", *flags.directoryDriver, "overlay_set", *flags.scriptFile != "")
	if err := chat(eng); err != nil {
		slog.Error("DialogPipe chat loop failed", "error", err)
		os.Exit(1)
	}
	slog.Info("DialogPipe exited successfully")
}

// Config holds environment configuration
type Config struct {
	DirectoryDriver string
	DirectoryDSN    string
	ScriptFile      string
}

// Flags holds command line flag values
type Flags struct {
	directoryDriver *string
	directoryDSN    *string
	scriptFile      *string
}

// initializeLogger sets up structured logging with the level and format
// taken from the environment (defaults to info-level text; responses go to
// stdout, logs to stderr).
func initializeLogger() {
	level := util.ParseLogLevelEnv("DIALOGPIPE_LOG_LEVEL", slog.LevelInfo)
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if util.ParseBoolEnv("DIALOGPIPE_LOG_JSON", false) {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	return Config{
		DirectoryDriver: util.GetEnvDefault("DIALOGPIPE_DIRECTORY_DRIVER", DefaultDirectoryDriver),
		DirectoryDSN:    os.Getenv("DIALOGPIPE_DIRECTORY_DSN"),
		ScriptFile:      os.Getenv("DIALOGPIPE_SCRIPT_FILE"),
	}
}

// parseCommandLineFlags parses command line flags with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		directoryDriver: flag.String("directory-driver", config.DirectoryDriver, "entity directory backend: static, sqlite3 or postgres"),
		directoryDSN:    flag.String("directory-dsn", config.DirectoryDSN, "DSN for the directory backend (file path for sqlite3)"),
		scriptFile:      flag.String("script", config.ScriptFile, "YAML overlay for bot wording and the phrase table"),
	}
	flag.Parse()
	return flags
}

// buildDirectory selects the entity directory backend by driver name.
func buildDirectory(flags Flags) (directory.Directory, error) {
	switch *flags.directoryDriver {
	case "", DefaultDirectoryDriver:
		return script.DefaultDirectory(), nil
	case "sqlite3":
		return directory.NewSQLiteDirectory(directory.WithDSN(*flags.directoryDSN))
	case "postgres":
		return directory.NewPostgresDirectory(directory.WithDSN(*flags.directoryDSN))
	default:
		return nil, fmt.Errorf("unknown directory driver %q", *flags.directoryDriver)
	}
}

// buildScript assembles the support script, applying the overlay file when
// one is configured.
func buildScript(dir directory.Directory, flags Flags) (engine.Script, error) {
	var opts []script.Option
	if *flags.scriptFile != "" {
		overlay, err := script.LoadOverlay(*flags.scriptFile)
		if err != nil {
			return engine.Script{}, err
		}
		opts = append(opts, script.WithOverlay(overlay))
	}
	return script.New(dir, opts...)
}

// chat runs the interactive loop until EOF or an exit command. After a
// terminal finish the session is reset so stale slots never leak into the
// next conversation.
func chat(eng *engine.Engine) error {
	mgr := session.NewManager(eng)
	s := mgr.Open()
	defer mgr.Close(s.ID)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if exitCommands[strings.ToLower(line)] {
			fmt.Println()
			return nil
		}
		if line == "" {
			fmt.Print("> ")
			continue
		}
		resp, err := mgr.Respond(s.ID, line)
		if err != nil {
			return fmt.Errorf("respond: %w", err)
		}
		fmt.Printf("\n%s: %s\n\n", BotName, resp)
		if strings.HasSuffix(resp, eng.EndMarker()) {
			if err := mgr.Reset(s.ID); err != nil {
				return err
			}
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}
