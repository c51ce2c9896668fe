package io

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flipstack/pkg/core/stack"
	errs "github.com/matzehuels/flipstack/pkg/errors"
	"github.com/matzehuels/flipstack/pkg/solver"
)

// Puzzle is one entry of a batch file.
type Puzzle struct {
	Name  string `toml:"name"`
	Start []int  `toml:"start"`
	Goal  []int  `toml:"goal"`
	Burnt bool   `toml:"burnt"`
}

// Mode returns the mode the puzzle is played in.
func (p Puzzle) Mode() stack.Mode { return stack.ModeOf(p.Burnt) }

// Query converts the puzzle into a solver query.
func (p Puzzle) Query() solver.Query {
	return solver.Query{
		Start: stack.Stack(p.Start),
		Goal:  stack.Stack(p.Goal),
		Mode:  p.Mode(),
	}
}

type batchFile struct {
	Puzzles []Puzzle `toml:"puzzle"`
}

// ReadPuzzles decodes a TOML batch from r. Unnamed puzzles are named
// "puzzle-N" after their 1-based position.
func ReadPuzzles(r io.Reader) ([]Puzzle, error) {
	var batch batchFile
	md, err := toml.NewDecoder(r).Decode(&batch)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidBatch, err, "decode batch")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidBatch, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if len(batch.Puzzles) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidBatch, "batch has no [[puzzle]] entries")
	}

	seen := make(map[string]int, len(batch.Puzzles))
	for i := range batch.Puzzles {
		p := &batch.Puzzles[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("puzzle-%d", i+1)
		}
		if prev, dup := seen[p.Name]; dup {
			return nil, errs.New(errs.ErrCodeInvalidBatch, "puzzle %d reuses the name %q of puzzle %d", i+1, p.Name, prev)
		}
		seen[p.Name] = i + 1
		if len(p.Start) == 0 {
			return nil, errs.New(errs.ErrCodeInvalidBatch, "puzzle %q has no start", p.Name)
		}
	}
	return batch.Puzzles, nil
}

// ImportPuzzles reads a TOML batch from the file at path.
func ImportPuzzles(path string) ([]Puzzle, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "batch file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPuzzles(f)
}
