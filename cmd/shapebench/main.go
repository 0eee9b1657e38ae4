// Command shapebench loads a shape model from an OBJ file, builds its
// acceleration structures, and reports how long each stage took. It is a
// thin example harness, not part of the core engine.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/astroshaper/shapemodels-go/objmesh"
	"github.com/astroshaper/shapemodels-go/vector"
)

func main() {
	path := flag.String("obj", "", "path to a Wavefront OBJ mesh")
	scale := flag.Float64("scale", 1.0, "uniform vertex scale")
	sunX := flag.Float64("sun-x", 1, "sun direction X component (mesh frame)")
	sunY := flag.Float64("sun-y", 0, "sun direction Y component (mesh frame)")
	sunZ := flag.Float64("sun-z", 0, "sun direction Z component (mesh frame)")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *path == "" {
		log.Fatal().Msg("missing required -obj flag")
	}

	t0 := time.Now()
	mesh, err := objmesh.LoadShapeOBJ(*path, *scale, true, true, true)
	if err != nil {
		log.Fatal().Err(err).Str("path", *path).Msg("failed to load shape model")
	}
	log.Info().
		Int("faces", mesh.FaceCount()).
		Dur("load_and_build", time.Since(t0)).
		Msg("shape model ready")

	out := make([]bool, mesh.FaceCount())
	sun := vector.Vector{X: *sunX, Y: *sunY, Z: *sunZ}

	t1 := time.Now()
	if err := mesh.UpdateIllumination(out, sun, true); err != nil {
		log.Fatal().Err(err).Msg("failed to update illumination")
	}

	lit := 0
	for _, v := range out {
		if v {
			lit++
		}
	}
	log.Info().
		Int("lit_faces", lit).
		Int("total_faces", mesh.FaceCount()).
		Dur("illuminate", time.Since(t1)).
		Msg("illumination pass complete")
}
