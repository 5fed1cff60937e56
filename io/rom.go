package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"maps"
	"strings"
)

const (
	ROM_LIMIT       = 256 // Largest image that fits in memory.
	ROM_WORD_DIGITS = 8   // Binary digits per image line.
)

// Rom is a program image, copied into memory from address 0 on reset.
type Rom struct {
	Data []uint8
}

// Defines returns an iter of defines for the image.
func (rc *Rom) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{
		"ROM_LIMIT": fmt.Sprintf("%v", ROM_LIMIT),
	})
}

// Bytes iterates over the image by address.
func (rc *Rom) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for addr, value := range rc.Data {
			if !yield(addr, value) {
				return
			}
		}
	}
}

// parseWord parses exactly eight binary digits, MSB first.
func parseWord(text string) (value uint8, err error) {
	if len(text) != ROM_WORD_DIGITS {
		err = ErrRomLine
		return
	}

	for _, ch := range []byte(text) {
		value <<= 1
		switch ch {
		case '0':
		case '1':
			value |= 1
		default:
			err = ErrRomLine
			return
		}
	}

	return
}

// ReadRom parses a program image: one byte per line as eight binary
// digits, optionally followed by a '#' comment. Blank and comment-only
// lines are skipped.
func ReadRom(input io.Reader) (rom *Rom, err error) {
	scanner := bufio.NewScanner(input)

	rom = &Rom{}

	var lineno int
	for scanner.Scan() {
		text := scanner.Text()
		lineno++

		line, _, _ := strings.Cut(text, "#")
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var value uint8
		value, err = parseWord(line)
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: err}
			rom = nil
			return
		}

		if len(rom.Data) == ROM_LIMIT {
			err = &ErrSyntax{LineNo: lineno, Line: text, Err: ErrRomFull}
			rom = nil
			return
		}

		rom.Data = append(rom.Data, value)
	}

	err = scanner.Err()
	if err != nil {
		rom = nil
	}

	return
}
