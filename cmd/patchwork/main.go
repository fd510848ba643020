// Command patchwork is a thin CLI over the patchwork library: it diffs
// two files, assembles a patch from them, and applies a patch to a base
// file.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var cli struct {
	Config string `help:"YAML file of Config overrides." type:"path"`

	Diff struct {
		BeforeFile *os.File `arg:"" help:"Base file."`
		AfterFile  *os.File `arg:"" help:"Updated file."`
		HTML       bool     `help:"Render as an HTML fragment instead of a delta."`
	} `cmd:"" help:"Diff two files and print the edit script."`

	Patch struct {
		Make struct {
			BeforeFile *os.File `arg:"" help:"Base file."`
			AfterFile  *os.File `arg:"" help:"Updated file."`
		} `cmd:"" help:"Make a patch file to turn 'before' into 'after'."`

		Apply struct {
			BeforeFile *os.File `arg:"" help:"Base file."`
			PatchFile  *os.File `arg:"" help:"Patch file."`
		} `cmd:"" help:"Apply a patch file to a base file."`
	} `cmd:"" help:"Assemble or apply a patch."`
}

func mustReadAll(f *os.File) string {
	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("read failed", "file", f.Name(), "err", err)
		os.Exit(1)
	}
	return string(data)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx := kong.Parse(&cli)
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		slog.Error("config load failed", "path", cli.Config, "err", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "diff <before-file> <after-file>":
		before := mustReadAll(cli.Diff.BeforeFile)
		after := mustReadAll(cli.Diff.AfterFile)
		diffs := cfg.Diff(before, after, true)
		diffs = cfg.DiffCleanupSemantic(diffs)
		if cli.Diff.HTML {
			fmt.Println(cfg.DiffPrettyHTML(diffs))
			return
		}
		fmt.Println(cfg.DiffToDelta(diffs))

	case "patch make <before-file> <after-file>":
		before := mustReadAll(cli.Patch.Make.BeforeFile)
		after := mustReadAll(cli.Patch.Make.AfterFile)
		patches := cfg.PatchMakeFromTexts(before, after)
		slog.Info("patch assembled", "hunks", len(patches))
		os.Stdout.WriteString(cfg.PatchToText(patches))

	case "patch apply <before-file> <patch-file>":
		before := mustReadAll(cli.Patch.Apply.BeforeFile)
		patchText := mustReadAll(cli.Patch.Apply.PatchFile)
		patches, err := cfg.PatchFromText(patchText)
		if err != nil {
			slog.Error("malformed patch", "err", err)
			os.Exit(1)
		}
		result, applied := cfg.PatchApply(patches, before)
		for i, ok := range applied {
			if !ok {
				slog.Warn("hunk rejected", "index", i)
			}
		}
		os.Stdout.WriteString(result)

	default:
		panic(ctx.Command())
	}
}
