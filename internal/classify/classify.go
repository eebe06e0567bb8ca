package classify

// Package classify assigns a read-layout category to a BioSample from the set
// of its file names. Classification runs before any bytes are transferred, so
// it works on expected names resolved from URLs as well as on files already
// on disk.

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/gsaget/gsa-downloader/internal/model"
)

// Convention is one forward/reverse short-read naming convention. A file
// matching R1 is a forward short read, R2 a reverse short read.
type Convention struct {
	Name string
	R1   *regexp.Regexp
	R2   *regexp.Regexp
}

// Default patterns. The catch-all pair covers the archive's `_f1`/`_r2`
// naming as well as the common `_1`/`_2` and `_R1`/`_R2` variants. The read
// token must follow a separator and sit against the fastq extension, so run
// accessions containing digits and bare names like R2.fastq.gz never match.
const (
	DefaultR1Pattern = `(?i)[_.-][rf]?1[_.-]?\.f(?:ast)?q\.gz$`
	DefaultR2Pattern = `(?i)[_.-][rf]?2[_.-]?\.f(?:ast)?q\.gz$`
)

// NewConvention compiles a convention from a pattern pair
func NewConvention(name, r1, r2 string) (Convention, error) {
	r1re, err := regexp.Compile(r1)
	if err != nil {
		return Convention{}, fmt.Errorf("convention %s: bad R1 pattern: %w", name, err)
	}
	r2re, err := regexp.Compile(r2)
	if err != nil {
		return Convention{}, fmt.Errorf("convention %s: bad R2 pattern: %w", name, err)
	}
	return Convention{Name: name, R1: r1re, R2: r2re}, nil
}

// DefaultConventions returns the built-in convention set
func DefaultConventions() []Convention {
	conv, err := NewConvention("paired-end", DefaultR1Pattern, DefaultR2Pattern)
	if err != nil {
		panic(err) // built-in patterns must compile
	}
	return []Convention{conv}
}

// Result is the layout classification of one BioSample's file set.
type Result struct {
	Status          model.LayoutStatus
	FastqCount      int
	ShortRead1      string
	ShortRead2      string
	LongReadPrimary string
	LongReadExtra   []string
}

// Classify buckets the file names of one BioSample into a layout category.
// The input order does not matter: names are sorted before matching, so the
// result is a pure function of the name set.
//
//   - one forward + one reverse short read, nothing else: short_only
//   - exactly one file matching no convention: long_only
//   - a short-read pair plus one or more unmatched files: hybrid, with the
//     first unmatched file as the primary long read
//   - anything else (no files, ambiguous pairs, several unmatched files with
//     no pair): unknown
func Classify(fileNames []string, conventions []Convention) Result {
	names := make([]string, len(fileNames))
	copy(names, fileNames)
	sort.Strings(names)

	var r1s, r2s, long []string
	for _, name := range names {
		switch {
		case matchesAny(name, conventions, true):
			r1s = append(r1s, name)
		case matchesAny(name, conventions, false):
			r2s = append(r2s, name)
		default:
			long = append(long, name)
		}
	}

	res := Result{Status: model.LayoutUnknown, FastqCount: len(names)}
	hasPair := len(r1s) == 1 && len(r2s) == 1

	switch {
	case hasPair && len(long) == 0:
		res.Status = model.LayoutShortOnly
		res.ShortRead1 = r1s[0]
		res.ShortRead2 = r2s[0]
	case hasPair && len(long) > 0:
		res.Status = model.LayoutHybrid
		res.ShortRead1 = r1s[0]
		res.ShortRead2 = r2s[0]
		res.LongReadPrimary = long[0]
		res.LongReadExtra = long[1:]
	case len(names) == 1 && len(long) == 1:
		res.Status = model.LayoutLongOnly
		res.LongReadPrimary = long[0]
	}

	return res
}

func matchesAny(name string, conventions []Convention, forward bool) bool {
	for _, conv := range conventions {
		re := conv.R1
		if !forward {
			re = conv.R2
		}
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
