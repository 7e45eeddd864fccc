// Package plan computes tagged pointer layouts for a TOML description of the
// pointer fields a program intends to embed, so struct layouts can be
// planned from the authoritative byte counts.
package plan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fxamacker/cbor/v2"
	"github.com/rawbytedev/smallptr"
	"github.com/rawbytedev/smallptr/internal/common"
	"golang.org/x/xerrors"
)

// Errors returned by Parse and Compute.
var (
	ErrNoPointers = errors.New("plan: no [[pointer]] entries")
	ErrAlignment  = errors.New("plan: align must be a power of two")
	ErrUnknownKey = errors.New("plan: unknown key")
)

// Plan is the decoded plan file.
type Plan struct {
	Pointers []Pointer `toml:"pointer"`
}

// Pointer describes one tagged pointer field.
type Pointer struct {
	Name             string `toml:"name"`
	TagBits          int    `toml:"tag_bits"`
	Align            int    `toml:"align"`    // bytes; 0 means 1
	PtrBits          int    `toml:"ptr_bits"` // 0 means the platform maximum
	Pack             *bool  `toml:"pack"`     // default true
	SafeToLoadBefore bool   `toml:"safe_to_load_before"`
	SafeToLoadAfter  bool   `toml:"safe_to_load_after"`
}

// Options converts the entry into layout options.
func (p Pointer) Options() ([]smallptr.Option, error) {
	align := p.Align
	if align == 0 {
		align = 1
	}
	if !common.IsPowTwo(align) {
		return nil, xerrors.Errorf("%w: %d", ErrAlignment, p.Align)
	}
	opts := []smallptr.Option{
		smallptr.WithTagBits(p.TagBits),
		smallptr.WithAlignBits(common.Log2(uintptr(align))),
	}
	if p.PtrBits != 0 {
		opts = append(opts, smallptr.WithPtrBits(p.PtrBits))
	}
	if p.Pack != nil && !*p.Pack {
		opts = append(opts, smallptr.Unpacked())
	}
	if p.SafeToLoadBefore {
		opts = append(opts, smallptr.SafeToLoadBefore())
	}
	if p.SafeToLoadAfter {
		opts = append(opts, smallptr.SafeToLoadAfter())
	}
	return opts, nil
}

// Parse decodes a plan. Keys the plan does not know are an error.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, xerrors.Errorf("parse plan: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, xerrors.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	if len(p.Pointers) == 0 {
		return nil, ErrNoPointers
	}
	return &p, nil
}

// Load reads and parses a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("cannot read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Entry is the computed layout of one pointer.
type Entry struct {
	Name      string `cbor:"name"`
	Kind      string `cbor:"kind"`
	NumBytes  int    `cbor:"num_bytes"`
	PtrBits   int    `cbor:"ptr_bits"`
	AlignBits int    `cbor:"align_bits"`
	TagBits   int    `cbor:"tag_bits"`
	TagMask   uint64 `cbor:"tag_mask"`
	Packed    bool   `cbor:"packed"`
	Rep       string `cbor:"rep"`
	Load      string `cbor:"load"`
}

// Compute builds the layout of every pointer in the plan.
func Compute(p *Plan) ([]Entry, error) {
	entries := make([]Entry, 0, len(p.Pointers))
	for i, ptr := range p.Pointers {
		name := ptr.Name
		if name == "" {
			name = fmt.Sprintf("pointer[%d]", i)
		}
		opts, err := ptr.Options()
		if err != nil {
			return nil, xerrors.Errorf("%s: %w", name, err)
		}
		l, err := smallptr.NewLayout(opts...)
		if err != nil {
			return nil, xerrors.Errorf("%s: %w", name, err)
		}
		entries = append(entries, Entry{
			Name:      name,
			Kind:      l.Kind().String(),
			NumBytes:  l.NumBytes(),
			PtrBits:   l.PtrBits(),
			AlignBits: l.AlignBits(),
			TagBits:   l.TagBits(),
			TagMask:   l.TagMask(),
			Packed:    l.Packed(),
			Rep:       l.Rep().Name(),
			Load:      l.Rep().Hint.String(),
		})
	}
	return entries, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = titleStyle.Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// WriteTable prints entries as a bordered table.
func WriteTable(w io.Writer, entries []Entry) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "BYTES", "LAYOUT", "PTR", "ALIGN", "TAG", "TAG MASK", "REP", "LOAD").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, e := range entries {
		t.Row(e.Name, strconv.Itoa(e.NumBytes), e.Kind, strconv.Itoa(e.PtrBits),
			strconv.Itoa(e.AlignBits), strconv.Itoa(e.TagBits), fmt.Sprintf("%#x", e.TagMask), e.Rep, e.Load)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n",
		titleStyle.Render(fmt.Sprintf("tagged pointer layouts (max pointer bits %d)", smallptr.MaxPtrBits)), t.Render())
	return err
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborEncMode = em
}

// EncodeCBOR returns the entries as canonical CBOR.
func EncodeCBOR(entries []Entry) ([]byte, error) {
	return cborEncMode.Marshal(entries)
}

// DecodeCBOR parses a report written by EncodeCBOR.
func DecodeCBOR(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := cbor.Unmarshal(data, &entries); err != nil {
		return nil, xerrors.Errorf("decode report: %w", err)
	}
	return entries, nil
}
