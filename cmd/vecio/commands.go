package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/arloliu/vecio"
	"github.com/arloliu/vecio/array"
	"github.com/arloliu/vecio/compress"
	"github.com/arloliu/vecio/format"
	"github.com/arloliu/vecio/section"
	"github.com/arloliu/vecio/storage"
)

func decoderOptions(c *cli.Context, logger *zap.Logger) []array.DecoderOption {
	return []array.DecoderOption{
		array.WithDecoderLogger(logger),
		array.WithVerifyChecksums(!c.Bool(flagNoVerify)),
	}
}

func inspectAction(c *cli.Context, logger *zap.Logger) error {
	if c.Args().Len() == 0 {
		return errors.New("inspect: at least one FILE is required")
	}

	for i, path := range c.Args().Slice() {
		d, err := vecio.InspectFile(path, decoderOptions(c, logger)...)
		if err != nil {
			return err
		}

		if i > 0 {
			fmt.Fprintln(c.App.Writer)
		}
		fmt.Fprintf(c.App.Writer, "%s (%s)\n", path, format.CompressionFromPath(path))
		fmt.Fprintln(c.App.Writer, renderHeader(d.Header()))
		if len(d.MetaEntries()) > 0 {
			fmt.Fprintln(c.App.Writer, renderMeta(d.MetaEntries()))
		}
		fmt.Fprintln(c.App.Writer, renderDims(d.Dims()))
	}

	return nil
}

func renderHeader(h section.Header) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"HeaderSize", h.HeaderSize})
	t.AppendRow(table.Row{"MetaSize", h.MetaSize})
	t.AppendRow(table.Row{"SpecSize", h.SpecSize})
	t.AppendRow(table.Row{"DataSize", h.DataSize})
	t.AppendRow(table.Row{"NumberType", format.NumberType(h.NumberSize)})
	t.AppendRow(table.Row{"Elements", h.ElementCount()})
	if h.HasChecksums() {
		t.AppendRow(table.Row{"CheckSumMeta", fmt.Sprintf("0x%08x", h.CheckSumMeta)})
		t.AppendRow(table.Row{"CheckSumData", fmt.Sprintf("0x%08x", h.CheckSumData)})
		t.AppendRow(table.Row{"CheckSum", fmt.Sprintf("0x%08x", h.CheckSum)})
	} else {
		t.AppendRow(table.Row{"Checksums", "none"})
	}

	return t.Render()
}

func renderMeta(entries []section.MetaEntry) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Key", "Value"})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Key, e.Value})
	}

	return t.Render()
}

func renderDims(dims []array.Dim) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Length", "Indices"})
	for i, d := range dims {
		t.AppendRow(table.Row{i, d.Name(), d.Len(), summarizeIndices(d)})
	}

	return t.Render()
}

func summarizeIndices(d array.Dim) string {
	const shown = 4

	n := d.Len()
	if n == 0 {
		return "[]"
	}

	parts := make([]string, 0, shown+2)
	for i := range min(n, shown) {
		parts = append(parts, strconv.FormatUint(d.Index(i), 10))
	}
	if n > shown {
		parts = append(parts, "...", strconv.FormatUint(d.Index(n-1), 10))
	}

	return "[" + strings.Join(parts, " ") + "]"
}

func dumpAction(c *cli.Context, logger *zap.Logger) error {
	if c.Args().Len() != 1 {
		return errors.New("dump: exactly one FILE is required")
	}

	d, err := vecio.InspectFile(c.Args().First(), decoderOptions(c, logger)...)
	if err != nil {
		return err
	}

	limit := c.Int(flagLimit)
	switch d.NumberType() {
	case format.Float32:
		return dumpValues[float32](c.App.Writer, d, limit)
	default:
		return dumpValues[float64](c.App.Writer, d, limit)
	}
}

func dumpValues[T constraints.Float](w io.Writer, d *array.Decoder, limit int) error {
	arr, err := array.Decode[T](d)
	if err != nil {
		return err
	}

	data := arr.Data()
	if limit > 0 && limit < len(data) {
		data = data[:limit]
	}

	shape := arr.Shape()
	coords := make([]int, len(shape))
	for _, v := range data {
		if _, err := fmt.Fprintf(w, "%s\t%v\n", formatCoords(arr, coords), v); err != nil {
			return err
		}
		advance(coords, shape)
	}

	return nil
}

// formatCoords renders the dimension index values addressing one element.
func formatCoords[T constraints.Float](arr *array.Array[T], coords []int) string {
	if len(coords) == 0 {
		return "()"
	}

	parts := make([]string, len(coords))
	for i, c := range coords {
		d := arr.DimAt(i)
		parts[i] = d.Name() + "=" + strconv.FormatUint(d.Index(c), 10)
	}

	return strings.Join(parts, ",")
}

// advance increments coords in row-major order, the last axis fastest.
func advance(coords, shape []int) {
	for i := len(coords) - 1; i >= 0; i-- {
		coords[i]++
		if coords[i] < shape[i] {
			return
		}
		coords[i] = 0
	}
}

func demoAction(c *cli.Context, logger *zap.Logger) error {
	if c.Args().Len() != 1 {
		return errors.New("demo: exactly one OUT path is required, - for stdout")
	}

	arr, err := testdimArray()
	if err != nil {
		return err
	}

	out := c.Args().First()
	if out == "-" {
		return arr.Write(c.App.Writer, array.WithLogger(logger))
	}

	if err := vecio.WriteFile(out, arr, array.WithLogger(logger)); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", out)

	return nil
}

// testdimArray is a ten-element float64 array on a single "testdim" axis
// indexed 8 through 17.
func testdimArray() (*array.Array[float64], error) {
	arr := vecio.NewFloat64()
	if err := arr.SetMeta("Name", "test"); err != nil {
		return nil, err
	}
	if err := arr.AddDimRange("testdim", 8, 10); err != nil {
		return nil, err
	}

	data := make([]float64, 10)
	for i := range data {
		data[i] = float64(i + 1)
	}
	arr.SetData(data)

	return arr, nil
}

func packAction(c *cli.Context, logger *zap.Logger) error {
	if c.Args().Len() != 2 {
		return errors.New("pack: IN and OUT are required")
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	ct := format.CompressionFromPath(out)
	if name := c.String(flagCompression); name != "" {
		parsed, ok := format.ParseCompression(name)
		if !ok {
			return errors.Errorf("pack: unknown compression %q", name)
		}
		ct = parsed
	}

	d, err := vecio.InspectFile(in, array.WithDecoderLogger(logger))
	if err != nil {
		return err
	}
	raw := d.RawRecord()

	packed, stats, err := compress.CompressWith(ct, raw)
	if err != nil {
		return err
	}
	if err := storage.WriteFileAtomic(out, packed); err != nil {
		return errors.Wrapf(err, "pack: writing %s", out)
	}

	logger.Debug("packed record", zap.String("in", in), zap.String("out", out), zap.Stringer("codec", ct))
	fmt.Fprintf(c.App.Writer, "%s -> %s: %d -> %d bytes (%s, %.1f%% saved)\n",
		in, out, stats.OriginalSize, stats.CompressedSize, ct, stats.SpaceSavings())

	return nil
}
