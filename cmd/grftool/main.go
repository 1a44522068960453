// grftool inspects and builds the GRF archives sceneexport reads map files
// from.
package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/Faultbox/sceneexport/pkg/grf"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "list", "ls":
		err = cmdList(args)
	case "extract", "x":
		err = cmdExtract(args)
	case "pack":
		err = cmdPack(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`grftool - GRF archive utility

Usage:
  grftool <command> [options]

Commands:
  info <file.grf>                     Show archive information
  list [-n N] <file.grf> [pattern]    List files (glob on base name or substring)
  extract <file.grf> <pattern> [dir]  Extract matching files, keeping their paths
  pack <dir> <file.grf>               Pack a data directory into an archive

Examples:
  grftool list data.grf "*.rsw"
  grftool extract data.grf prontera ./data
  grftool pack ./data maps.grf`)
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: grftool info <file.grf>")
	}

	archive, err := grf.Open(args[0])
	if err != nil {
		return err
	}
	defer archive.Close()

	var size int64
	if st, err := os.Stat(args[0]); err == nil {
		size = st.Size()
	}

	fmt.Printf("Archive: %s\n", args[0])
	fmt.Printf("Files:   %d\n", archive.Len())
	fmt.Printf("Size:    %s\n", humanize.Bytes(uint64(size)))
	fmt.Println()
	fmt.Println("Files by type:")
	for _, s := range countByExt(archive.List()) {
		fmt.Printf("  %-10s %d\n", s.ext, s.count)
	}
	return nil
}

type extStat struct {
	ext   string
	count int
}

// countByExt counts names per lowercase extension, most common first.
func countByExt(names []string) []extStat {
	counts := make(map[string]int)
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if ext == "" {
			ext = "(no ext)"
		}
		counts[ext]++
	}

	stats := make([]extStat, 0, len(counts))
	for ext, count := range counts {
		stats = append(stats, extStat{ext, count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].count != stats[j].count {
			return stats[i].count > stats[j].count
		}
		return stats[i].ext < stats[j].ext
	})
	return stats
}

// match reports whether name matches pattern as a glob on its base name or
// as a substring of the full path. An empty pattern matches everything.
func match(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	pattern = strings.ToLower(pattern)
	if ok, _ := filepath.Match(pattern, strings.ToLower(filepath.Base(name))); ok {
		return true
	}
	return strings.Contains(strings.ToLower(name), pattern)
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N files (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: grftool list [-n N] <file.grf> [pattern]")
	}

	archive, err := grf.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer archive.Close()

	count := 0
	for _, f := range archive.List() {
		if !match(fs.Arg(1), f) {
			continue
		}
		fmt.Println(f)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}
	fmt.Fprintf(os.Stderr, "\n(%d files)\n", count)
	return nil
}

func cmdExtract(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: grftool extract <file.grf> <pattern> [dir]")
	}
	outputDir := "."
	if len(args) > 2 {
		outputDir = args[2]
	}

	archive, err := grf.Open(args[0])
	if err != nil {
		return err
	}
	defer archive.Close()

	n, err := extract(afero.NewOsFs(), archive, args[1], outputDir)
	fmt.Fprintf(os.Stderr, "Extracted %d files\n", n)
	return err
}

// entryPath turns an archive name into a relative path that stays inside
// the extraction directory, without the leading "data/".
func entryPath(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(name, "\\", "/")), "/")
	return strings.TrimPrefix(name, "data/")
}

// extract writes the matching entries under dir, dropping the leading
// "data/" so dir can be used as a sceneexport data directory.
func extract(fs afero.Fs, archive *grf.Archive, pattern, dir string) (int, error) {
	n := 0
	for _, name := range archive.List() {
		if !match(pattern, name) {
			continue
		}
		data, err := archive.Read(name)
		if err != nil {
			return n, err
		}

		rel := entryPath(name)
		if rel == "" {
			continue
		}
		out := filepath.Join(dir, filepath.FromSlash(rel))
		if err := fs.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return n, err
		}
		if err := afero.WriteFile(fs, out, data, 0o644); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func cmdPack(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: grftool pack <dir> <file.grf>")
	}

	files, err := collect(afero.NewOsFs(), args[0])
	if err != nil {
		return err
	}

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	if err := grf.Write(out, files); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("Packed %d files into %s\n", len(files), args[1])
	return nil
}

// collect reads every regular file under dir as a GRF entry named
// data\<relative path>.
func collect(fs afero.Fs, dir string) ([]grf.File, error) {
	var files []grf.File
	err := afero.Walk(fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		data, err := afero.ReadFile(fs, p)
		if err != nil {
			return err
		}
		name := `data\` + strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`)
		files = append(files, grf.File{Name: name, Data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	return files, nil
}
