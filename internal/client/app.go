package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/go-files-manager/internal/adapter"
	"github.com/MKhiriev/go-files-manager/internal/logger"
	"github.com/MKhiriev/go-files-manager/models"
)

type command struct {
	usage string
	run   func(ctx context.Context, args []string) error
}

type App struct {
	adapter   adapter.ServerAdapter
	tokens    TokenStore
	clipboard Clipboard
	out       io.Writer

	commands map[string]command

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, tokens TokenStore, clipboard Clipboard, out io.Writer, logger *logger.Logger) *App {
	a := &App{
		adapter:   serverAdapter,
		tokens:    tokens,
		clipboard: clipboard,
		out:       out,
		logger:    logger,
	}

	a.commands = map[string]command{
		"register":   {usage: "register <email> <password>", run: a.register},
		"connect":    {usage: "connect [-copy] <email> <password>", run: a.connect},
		"disconnect": {usage: "disconnect", run: a.disconnect},
		"me":         {usage: "me", run: a.me},
		"mkdir":      {usage: "mkdir [-parent id] [-public] <name>", run: a.mkdir},
		"upload":     {usage: "upload [-parent id] [-public] [-type file|image] <path>", run: a.upload},
		"ls":         {usage: "ls [-parent id] [-page n]", run: a.list},
		"info":       {usage: "info <id>", run: a.info},
		"publish":    {usage: "publish <id>", run: a.setPublic(true)},
		"unpublish":  {usage: "unpublish <id>", run: a.setPublic(false)},
		"download":   {usage: "download [-size 500|250|100] [-o path] <id>", run: a.download},
		"status":     {usage: "status", run: a.status},
		"stats":      {usage: "stats", run: a.stats},
	}

	return a
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return ErrUsage
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}

	token, err := a.tokens.Load()
	if err != nil {
		return err
	}
	if token != "" {
		a.adapter.SetToken(token)
	}

	if err = cmd.run(ctx, args[1:]); errors.Is(err, ErrUsage) {
		fmt.Fprintf(a.out, "usage: %s\n", cmd.usage)
	}
	return err
}

func (a *App) printUsage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", a.commands[name].usage)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}

	user, err := a.adapter.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return a.printJSON(user)
}

func (a *App) connect(ctx context.Context, args []string) error {
	fs := newFlagSet("connect")
	copyToken := fs.Bool("copy", false, "copy the token to the clipboard")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return ErrUsage
	}

	token, err := a.adapter.Connect(ctx, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	if err = a.tokens.Save(token.Token); err != nil {
		return err
	}

	fmt.Fprintln(a.out, token.Token)
	if *copyToken {
		if err = a.clipboard.WriteAll(token.Token); err != nil {
			a.logger.Warn().Err(err).Msg("token was not copied")
		} else {
			fmt.Fprintln(a.out, "token copied to clipboard")
		}
	}

	return nil
}

// disconnect forgets the local token even when the server no longer knows
// the session.
func (a *App) disconnect(ctx context.Context, _ []string) error {
	err := a.adapter.Disconnect(ctx)
	if clearErr := a.tokens.Clear(); clearErr != nil {
		return errors.Join(err, clearErr)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "disconnected")
	return nil
}

func (a *App) me(ctx context.Context, _ []string) error {
	user, err := a.adapter.Me(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(user)
}

func (a *App) mkdir(ctx context.Context, args []string) error {
	fs := newFlagSet("mkdir")
	parent := fs.String("parent", "", "id of the parent folder")
	public := fs.Bool("public", false, "make the folder public")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}

	entry, err := a.adapter.CreateEntry(ctx, models.CreateEntryRequest{
		Name:     fs.Arg(0),
		Type:     models.Folder,
		ParentID: models.ParseParentID(*parent),
		IsPublic: *public,
	})
	if err != nil {
		return err
	}
	return a.printJSON(entry)
}

func (a *App) upload(ctx context.Context, args []string) error {
	fs := newFlagSet("upload")
	parent := fs.String("parent", "", "id of the parent folder")
	public := fs.Bool("public", false, "make the file public")
	entryType := fs.String("type", "", "file or image; guessed from the extension when empty")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	kind := models.EntryType(*entryType)
	if kind == "" {
		kind = guessEntryType(path)
	}

	entry, err := a.adapter.CreateEntry(ctx, models.CreateEntryRequest{
		Name:     filepath.Base(path),
		Type:     kind,
		ParentID: models.ParseParentID(*parent),
		IsPublic: *public,
		Data:     base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return err
	}
	return a.printJSON(entry)
}

func guessEntryType(path string) models.EntryType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return models.Image
	default:
		return models.File
	}
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := newFlagSet("ls")
	parent := fs.String("parent", "", "id of the folder to list")
	page := fs.Int("page", 0, "zero-based page number")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	entries, err := a.adapter.ListEntries(ctx, models.ParseParentID(*parent), *page)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tPUBLIC\tNAME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", e.ID, e.Type, e.IsPublic, e.Name)
	}
	return tw.Flush()
}

func (a *App) info(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}

	entry, err := a.adapter.GetEntry(ctx, args[0])
	if err != nil {
		return err
	}
	return a.printJSON(entry)
}

func (a *App) setPublic(isPublic bool) func(ctx context.Context, args []string) error {
	return func(ctx context.Context, args []string) error {
		if len(args) != 1 {
			return ErrUsage
		}

		entry, err := a.adapter.SetPublic(ctx, args[0], isPublic)
		if err != nil {
			return err
		}
		return a.printJSON(entry)
	}
}

func (a *App) download(ctx context.Context, args []string) error {
	fs := newFlagSet("download")
	size := fs.Int("size", 0, "thumbnail width")
	outPath := fs.String("o", "", "write to this file instead of stdout")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}

	data, err := a.adapter.Download(ctx, fs.Arg(0), *size)
	if err != nil {
		return err
	}

	if *outPath == "" {
		_, err = a.out.Write(data)
		return err
	}
	if err = os.WriteFile(*outPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", *outPath, err)
	}
	fmt.Fprintf(a.out, "%d bytes written to %s\n", len(data), *outPath)
	return nil
}

func (a *App) status(ctx context.Context, _ []string) error {
	status, err := a.adapter.Status(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(status)
}

func (a *App) stats(ctx context.Context, _ []string) error {
	stats, err := a.adapter.Stats(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(stats)
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}
