// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the LS-8.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]uint8{
	"R0": 0,
	"R1": 1,
	"R2": 2,
	"R3": 3,
	"R4": 4,
	"R5": 5,
	"R6": 6,
	"R7": 7,
	"IM": REG_IM,
	"IS": REG_IS,
	"SP": REG_SP,
}

var (
	reLabel  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reChar   = regexp.MustCompile(`'\\?[^']'`)
	reParen  = regexp.MustCompile(`\$\([^\$]*\)`)
	reString = regexp.MustCompile(`^((?:[A-Za-z_][A-Za-z0-9_]*:\s*)*)(?i:ds)\s+(.*)$`)
)

// valueOf returns the byte value of a number. Negative numbers down to
// -128 are stored as two's complement.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < -0x80 || v64 > 0xff {
		err = ErrValueRange
		return
	}

	value = uint8(v64)

	return
}

// register returns the register index of a register name.
func (asm *Assembler) register(word string) (reg uint8, err error) {
	reg, ok := regMap[strings.ToUpper(word)]
	if !ok {
		err = ErrRegisterInvalid
	}

	return
}

// immediate returns the value of a number, or the name of a label to link.
func (asm *Assembler) immediate(word string) (value uint8, label string, err error) {
	value, err = asm.valueOf(word)
	if err == nil {
		return
	}

	if _, ok := err.(ErrParseNumber); ok && reLabel.MatchString(word) {
		err = nil
		label = word
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, _err := strconv.ParseInt(str, 0, 64)
		if _err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, pc := range asm.Label {
		pred[key] = starlark.MakeInt(pc)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// defineLabel records label at the current address.
func (asm *Assembler) defineLabel(label string) (err error) {
	if !reLabel.MatchString(label) {
		err = ErrLabelSyntax
		return
	}

	_, ok := asm.Label[label]
	if ok {
		err = ErrLabelDuplicate
		return
	}

	if asm.Label == nil {
		asm.Label = make(map[string]int, 16)
	}
	asm.Label[label] = asm.currentPc()

	return
}

// parseString handles 'DS text', which emits the bytes of text verbatim.
func (asm *Assembler) parseString(line string, lineno int) (ok bool, err error) {
	match := reString.FindStringSubmatch(line)
	if match == nil {
		return
	}
	ok = true

	for _, label := range strings.Fields(match[1]) {
		err = asm.defineLabel(strings.TrimSuffix(label, ":"))
		if err != nil {
			return
		}
	}

	text := match[2]
	if len(text) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	asm.Lines = append(asm.Lines, Line{
		LineNo: lineno,
		Pc:     asm.currentPc(),
		Text:   line,
		Words:  []string{"DS", text},
		Codes:  []uint8(text),
	})

	return
}

// parseLine parses a single line into words, handling equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reChar.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\x00"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		err = asm.defineLabel(words[0][:len(words[0])-1])
		if err != nil {
			return
		}
		words = words[1:]
	}

	return
}

// currentPc gets the address of the next generated byte.
func (asm *Assembler) currentPc() int {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Pc + len(last.Codes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Lines = asm.Lines[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var is_string bool
		is_string, err = asm.parseString(line, lineno)
		if err != nil {
			return
		}
		if is_string {
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno, line)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if asm.currentPc() > MEMORY_SIZE {
		err = ErrImageTooLarge
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]

		for _, link := range op.Links {
			pc, ok := asm.Label[link.Label]
			if !ok {
				lineno, line = op.LineNo, op.Text
				err = ErrLabelMissing(link.Label)
				return
			}
			if pc > 0xff {
				lineno, line = op.LineNo, op.Text
				err = ErrValueRange
				return
			}
			op.Codes[link.Index] = uint8(pc)
		}
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// parseWords generates the bytes for the words of a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int, text string) (err error) {
	var codes []uint8
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := slices.Clone(words)

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		line := Line{LineNo: lineno, Pc: asm.currentPc(), Text: text, Words: initial_words, Codes: codes, Links: links}
		asm.Lines = append(asm.Lines, line)
	}()

	immediate := func(word string) (err error) {
		value, label, err := asm.immediate(word)
		if err != nil {
			return
		}
		if len(label) != 0 {
			links = append(links, Link{Index: len(codes), Label: label})
		}
		codes = append(codes, value)
		return
	}

	mnemonic := strings.ToUpper(words[0])
	args := words[1:]

	switch mnemonic {
	case "DB":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, arg := range args {
			err = immediate(arg)
			if err != nil {
				return
			}
		}
	default:
		op, inst, ok := LookupName(mnemonic)
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		if len(args) < len(inst.Args) {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > len(inst.Args) {
			err = ErrOpcodeExtraArgs
			return
		}

		codes = append(codes, uint8(op))
		for n, kind := range inst.Args {
			switch kind {
			case ARG_REG:
				var reg uint8
				reg, err = asm.register(args[n])
				if err != nil {
					return
				}
				codes = append(codes, reg)
			case ARG_IMM:
				err = immediate(args[n])
				if err != nil {
					return
				}
			}
		}
	}

	return
}
