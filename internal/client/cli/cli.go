// Package cli implements the transconnect subcommands on top of the client
// services. Commands write to an iocli.IO and return errors to the caller.
package cli

import (
	"errors"
	"log/slog"

	"github.com/iudanet/transconnection/internal/client/auth"
	"github.com/iudanet/transconnection/internal/client/device"
	"github.com/iudanet/transconnection/internal/client/history"
	"github.com/iudanet/transconnection/internal/client/iocli"
	"github.com/iudanet/transconnection/internal/client/preferences"
	"github.com/iudanet/transconnection/internal/client/speech"
	"github.com/iudanet/transconnection/internal/client/subscription"
	"github.com/iudanet/transconnection/internal/client/translation"
	"github.com/iudanet/transconnection/internal/client/users"
)

var (
	// ErrUnknownCommand is returned by Run for an unrecognised command
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage indicates missing or malformed command arguments
	ErrUsage = errors.New("invalid arguments")

	// ErrNotSignedIn indicates that the command needs a signed in user
	ErrNotSignedIn = errors.New("not signed in, run 'transconnect login' first")

	// ErrQuotaExceeded indicates that the weekly allowance is used up
	ErrQuotaExceeded = errors.New("you have reached your weekly limit, upgrade to continue")

	// ErrOtherDevice indicates that the subscription is bound to another device
	ErrOtherDevice = errors.New("your subscription is active on another device")
)

// Deps сервисы, с которыми работают команды
type Deps struct {
	Users      *users.Directory
	Auth       *auth.Service
	Meter      *subscription.Meter
	History    *history.Log
	Theme      *preferences.Store
	Device     device.Provider
	Translator *translation.Client
	Speech     *speech.Client
	Logger     *slog.Logger
}

type Cli struct {
	io         iocli.IO
	users      *users.Directory
	auth       *auth.Service
	meter      *subscription.Meter
	history    *history.Log
	theme      *preferences.Store
	device     device.Provider
	translator *translation.Client
	speech     *speech.Client
	logger     *slog.Logger
}

func New(io iocli.IO, deps Deps) *Cli {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Cli{
		io:         io,
		users:      deps.Users,
		auth:       deps.Auth,
		meter:      deps.Meter,
		history:    deps.History,
		theme:      deps.Theme,
		device:     deps.Device,
		translator: deps.Translator,
		speech:     deps.Speech,
		logger:     logger,
	}
}

func PrintUsage(io iocli.IO) {
	io.Println("TransConnection Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  transconnect [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  -version               Show version information")
	io.Println("  -db PATH               Path to local database")
	io.Println("  -backend NAME          Storage backend: bolt or sqlite")
	io.Println("  -api-key KEY           Remote API key (prefer TRANSCONNECT_API_KEY)")
	io.Println("  -base-url URL          Remote API base URL")
	io.Println("  -cache-dir DIR         Directory for synthesized audio")
	io.Println("  -log-level LEVEL       debug, info, warn or error")
	io.Println()
	io.Println("Account:")
	io.Println("  register                          Create a user and sign in")
	io.Println("  login                             Sign in with email and password")
	io.Println("  logout                            Sign out")
	io.Println("  status                            Show who is signed in")
	io.Println("  profile [-first -last -email -phone -password]")
	io.Println("                                    Show or update the current profile")
	io.Println("  subscribe <plan>                  Switch plan (free, weekly, monthly, yearly)")
	io.Println("  usage                             Show weekly usage and allowance")
	io.Println()
	io.Println("Translation:")
	io.Println("  translate <src> <tgt> <text>      Translate text")
	io.Println("  detect <text>                     Detect the language of text")
	io.Println("  pronounce <lang> <text>           Show a pronunciation guide")
	io.Println("  alternatives [-n N] <src> <tgt> <text>")
	io.Println("                                    Suggest alternative translations")
	io.Println("  transcribe [-from L] [-to L] <file>")
	io.Println("                                    Transcribe audio, optionally translating it")
	io.Println("  speak <lang> <text>               Synthesize and play speech")
	io.Println("  languages                         List supported languages and common pairs")
	io.Println()
	io.Println("Data:")
	io.Println("  history [-type voice|text|camera|all]")
	io.Println("                                    Show translation history")
	io.Println("  theme [dark|light|toggle]         Show or change the theme")
	io.Println("  export                            Print all local user data as JSON")
	io.Println("  clear [-yes]                      Remove all users and history")
	io.Println()
	io.Println("Examples:")
	io.Println("  transconnect register")
	io.Println("  transconnect translate en es \"Good morning\"")
	io.Println("  transconnect transcribe -to fr recording.m4a")
}
