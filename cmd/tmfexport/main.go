// tmfexport converts OBJ and glTF meshes into Tower Mesh Format (.tmf) files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/tower-tmf/internal/assets"
	"github.com/Faultbox/tower-tmf/internal/config"
	"github.com/Faultbox/tower-tmf/internal/exporter"
	"github.com/Faultbox/tower-tmf/internal/logger"
	"github.com/Faultbox/tower-tmf/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "export", "x":
		cmdExport(args)
	case "list", "ls":
		cmdList(args)
	case "info":
		cmdInfo(args)
	case "dump":
		cmdDump(args)
	case "init-config":
		cmdInitConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tmfexport - Tower Mesh Format exporter

Usage:
  tmfexport <command> [options]

Commands:
  export [options] <input> [output.tmf]  Convert one mesh to .tmf
  list [-name-encoding E] <input>        List meshes in an OBJ/glTF file
  info <file.tmf>                        Show counts and check a .tmf file
  dump [-n N] <file.tmf>                 Print the first N vertices and corners
  init-config [path]                     Write the default config file

Export options:
  -angle N              Edge split angle in degrees (default 60)
  -name S               Mesh name stored in the file (default: source name)
  -object S             Mesh to export, by name or index (default: first)
  -no-axis-conversion   Keep source axes
  -reject-missing-uv    Fail on meshes without a UV layer
  -name-encoding E      Charset of OBJ object names (e.g. euc-kr)
  -out-dir D            Directory for the output file
  -config P             Config file (default ./tmfexport.yaml)
  -debug, -log P        Logging

Examples:
  tmfexport export tower.obj
  tmfexport export -angle 45 -object Roof scene.glb roof.tmf
  tmfexport info tower.tmf
  tmfexport dump -n 12 tower.tmf`)
}

func fail(err error) {
	logger.Error("command failed", zap.Error(err))
	logger.Sync()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// setup loads the config with the command's flag overrides and starts
// logging.
func setup(flags *config.Flags) *config.Config {
	cfg, err := config.Load(flags)
	if err != nil {
		fail(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail(err)
	}
	return cfg
}

func checkSource(path string) {
	if !assets.Supported(path) {
		fail(fmt.Errorf("%w: %s (want .obj, .gltf or .glb)", assets.ErrUnsupportedFormat, path))
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	name := fs.String("name", "", "Mesh name stored in the file")
	object := fs.String("object", "", "Mesh to export, by name or index")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tmfexport export [options] <input.obj|.gltf|.glb> [output.tmf]")
		os.Exit(1)
	}
	input := fs.Arg(0)

	cfg := setup(flags)
	defer logger.Sync()
	checkSource(input)

	opts, err := cfg.Export.Options()
	if err != nil {
		fail(err)
	}

	loader := assets.NewLoader(formats.OBJOptions{NameEncoding: cfg.Export.NameEncoding})
	defer loader.Close()

	src, err := loader.Select(input, *object)
	if err != nil {
		fail(err)
	}

	meshName := *name
	if meshName == "" {
		meshName = src.Name
	}
	if meshName == "" {
		meshName = trimExt(filepath.Base(input))
	}

	dest := exporter.DefaultDestination(input, cfg.Export.OutputDir)
	if fs.NArg() > 1 {
		dest = exporter.EnsureExtension(fs.Arg(1))
		if cfg.Export.OutputDir != "" && !filepath.IsAbs(dest) {
			dest = filepath.Join(cfg.Export.OutputDir, dest)
		}
	}

	req := exporter.NewRequest(dest, meshName)
	req.SplitAngleDegrees = opts.SplitAngleDegrees
	req.AxisUpConversion = opts.AxisUpConversion && !src.YUp
	req.MissingUV = opts.MissingUV
	if src.YUp && opts.AxisUpConversion {
		logger.Debug("source is Y-up, skipping axis conversion", zap.String("input", input))
	}

	logger.Info("exporting", zap.String("input", input), zap.String("mesh", meshName), zap.String("output", dest))

	res, err := exporter.Export(req, src.Mesh)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Exported %q -> %s\n", meshName, res.Path)
	fmt.Printf("  Source:    %d vertices, %d polygons\n", res.SourceVerts, res.SourcePolys)
	fmt.Printf("  Output:    %d vertices, %d triangles\n", res.Vertices, res.Triangles)
	fmt.Printf("  Size:      %d bytes\n", res.Bytes)
	if res.UVsZeroFilled {
		fmt.Println("  Warning:   no UV layer, texture coordinates written as (0, 0)")
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tmfexport list [-name-encoding E] <input.obj|.gltf|.glb>")
		os.Exit(1)
	}
	input := fs.Arg(0)

	cfg := setup(flags)
	defer logger.Sync()
	checkSource(input)

	if err := listMeshes(os.Stdout, input, cfg); err != nil {
		fail(err)
	}
}

// listMeshes prints one row per mesh in input, decoding OBJ names with the
// configured charset.
func listMeshes(w io.Writer, input string, cfg *config.Config) error {
	loader := assets.NewLoader(formats.OBJOptions{NameEncoding: cfg.Export.NameEncoding})
	defer loader.Close()

	meshes, err := loader.Load(input)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%-4s %-24s %8s %8s %4s\n", "#", "Name", "Verts", "Polys", "UVs")
	for i, m := range meshes {
		uv := "no"
		if m.Mesh.HasUVs() {
			uv = "yes"
		}
		fmt.Fprintf(w, "%-4d %-24s %8d %8d %4s\n", i, m.Name, len(m.Mesh.Positions), len(m.Mesh.Polygons), uv)
	}
	return nil
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tmfexport info <file.tmf>")
		os.Exit(1)
	}

	m, err := formats.ParseTMFFile(args[0])
	if err != nil {
		fail(err)
	}

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Name:      %q\n", m.Name)
	fmt.Printf("Vertices:  %d\n", len(m.Positions))
	fmt.Printf("Normals:   %d\n", len(m.Normals))
	fmt.Printf("UVs:       %d\n", len(m.UVs))
	fmt.Printf("Indices:   %d\n", len(m.Indices))
	fmt.Printf("Triangles: %d\n", m.TriangleCount())

	if err := m.CheckInvariants(); err != nil {
		fmt.Printf("Check:     FAILED\n  %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Check:     ok")

	raw, _ := m.RawVertices()
	fmt.Printf("GPU size:  %d bytes interleaved\n", len(raw)*4)
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	limit := fs.Int("n", 8, "Number of vertices and corners to print (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tmfexport dump [-n N] <file.tmf>")
		os.Exit(1)
	}

	m, err := formats.ParseTMFFile(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	if err := m.CheckInvariants(); err != nil {
		fail(err)
	}

	fmt.Printf("Positions (%d):\n", len(m.Positions))
	for i, p := range m.Positions {
		if *limit > 0 && i >= *limit {
			fmt.Printf("  ... %d more\n", len(m.Positions)-i)
			break
		}
		fmt.Printf("  %4d  %9.4f %9.4f %9.4f\n", i, p.X, p.Y, p.Z)
	}

	fmt.Printf("Corners (%d):\n", len(m.Indices))
	for i, idx := range m.Indices {
		if *limit > 0 && i >= *limit {
			fmt.Printf("  ... %d more\n", len(m.Indices)-i)
			break
		}
		n, uv := m.Normals[i], m.UVs[i]
		fmt.Printf("  %4d  v=%-5d n=(%7.4f %7.4f %7.4f) uv=(%6.4f %6.4f)\n",
			i, idx, n.X, n.Y, n.Z, uv.X, uv.Y)
	}
}

func cmdInitConfig(args []string) {
	cfg := config.Default()

	var err error
	path := filepath.Join(config.ConfigDir(), "config.yaml")
	if len(args) > 0 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
