package main

import (
	"flag"
	"fmt"
	"gl-quads/libio"
	"gl-quads/libmesh"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pierrec/lz4/v4"
)

var args = struct {
	compress bool
	level    int
}{
	compress: false,
	level:    0,
}

var compressionLevels = []lz4.CompressionLevel{
	lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func printGeneralUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [arguments] <file>...\n\n", exe)
	fmt.Fprintf(os.Stderr, "The arguments are:\n\n")
	flag.CommandLine.SetOutput(os.Stderr)
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.BoolVar(&args.compress, "compress", args.compress, "write an lz4 compressed copy next to each file")
	flag.IntVar(&args.level, "level", args.level, "0=fast, 1-9=slower and smaller")

	flag.Parse()

	if flag.NArg() == 0 {
		printGeneralUsage()
	}
	if args.level < 0 || args.level >= len(compressionLevels) {
		harderr(fmt.Errorf("invalid compression level %d", args.level))
	}

	failed := false
	for _, name := range flag.Args() {
		if err := process(name, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", name, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func process(name string, out io.Writer) error {
	model, err := loadModel(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s:\n%s", name, describe(model))

	if args.compress && !strings.HasSuffix(name, ".lz4") {
		size, err := compressFile(name, name+".lz4", compressionLevels[args.level])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  compressed:  %s (%d bytes)\n", name+".lz4", size)
	}
	return nil
}

func loadModel(name string) (*libio.StlModel, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(name, ".lz4") {
		r = lz4.NewReader(file)
	}
	return libio.DecodeStl(r)
}

// describe reports the model and the gpu buffers it would occupy when drawn
func describe(model *libio.StlModel) string {
	vertices := model.VertexCount()
	min, max := model.Bounds()
	size := max.Sub(min)

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "  name:        %q\n", model.Name)
	fmt.Fprintf(sb, "  triangles:   %d\n", model.TriangleCount())
	fmt.Fprintf(sb, "  vertices:    %d\n", vertices)
	fmt.Fprintf(sb, "  bounds:      %s .. %s\n", formatVec(min), formatVec(max))
	fmt.Fprintf(sb, "  size:        %s\n", formatVec(size))
	fmt.Fprintf(sb, "  positions:   %d bytes\n", len(model.Vertices)*4)
	fmt.Fprintf(sb, "  colors:      %d bytes\n", vertices*libmesh.ColorComponents*4)
	fmt.Fprintf(sb, "  indices:     %d bytes\n", vertices*2)
	if _, err := libmesh.SequentialIndices(vertices); err != nil {
		fmt.Fprintf(sb, "  drawable:    no, %v\n", err)
	} else {
		fmt.Fprintf(sb, "  drawable:    yes\n")
	}
	return sb.String()
}

func formatVec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

func compressFile(src, dst string, level lz4.CompressionLevel) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	lzw := lz4.NewWriter(out)
	if err := lzw.Apply(lz4.CompressionLevelOption(level)); err != nil {
		return 0, err
	}
	if _, err := io.Copy(lzw, in); err != nil {
		return 0, fmt.Errorf("could not compress %q: %w", src, err)
	}
	if err := lzw.Close(); err != nil {
		return 0, fmt.Errorf("could not compress %q: %w", src, err)
	}

	stat, err := out.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
