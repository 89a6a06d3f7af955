// Command trefoil-export writes the configured trefoil tube as a Wavefront
// OBJ file without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/config"
	"github.com/Faultbox/trefoil/internal/export"
	"github.com/Faultbox/trefoil/internal/logger"
	"github.com/Faultbox/trefoil/pkg/curve"
	"github.com/Faultbox/trefoil/pkg/tube"
)

var (
	flagOut    = flag.String("out", "trefoil.obj", "Output OBJ path")
	flagName   = flag.String("name", "trefoil", "OBJ group name")
	flagVerify = flag.Bool("verify", false, "Re-read the written file and compare it with the mesh")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("export failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	opts, err := cfg.TubeOptions()
	if err != nil {
		return err
	}

	start := time.Now()
	mesh, err := tube.Generate(curve.Trefoil{}, tube.Square(2), opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	logger.Info("trefoil generated",
		zap.Stringer("style", opts.Style),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("indices", mesh.IndexCount()),
		zap.Duration("took", time.Since(start)))

	if err := export.WriteFile(*flagOut, *flagName, mesh); err != nil {
		return err
	}

	if !*flagVerify {
		return nil
	}
	if mesh.Primitive() != tube.Triangles {
		logger.Warn("skipping verification", zap.Stringer("primitive", mesh.Primitive()))
		return nil
	}
	rep, err := export.Verify(*flagOut, mesh)
	if err != nil {
		return err
	}
	logger.Sugar.Infof("%s: %d vertices, %d triangles, uv=%t normals=%t",
		*flagOut, rep.Vertices, rep.Triangles, rep.TexCoords, rep.Normals)
	return nil
}
