// Package demo runs the interactive trefoil viewer.
package demo

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/assets"
	"github.com/Faultbox/trefoil/internal/config"
	"github.com/Faultbox/trefoil/internal/engine/camera"
	"github.com/Faultbox/trefoil/internal/engine/debug"
	"github.com/Faultbox/trefoil/internal/engine/gpu"
	"github.com/Faultbox/trefoil/internal/engine/input"
	"github.com/Faultbox/trefoil/internal/engine/lighting"
	"github.com/Faultbox/trefoil/internal/engine/orient"
	"github.com/Faultbox/trefoil/internal/engine/render"
	"github.com/Faultbox/trefoil/internal/engine/shader"
	"github.com/Faultbox/trefoil/internal/engine/shader/shaders"
	"github.com/Faultbox/trefoil/internal/engine/texture"
	"github.com/Faultbox/trefoil/internal/engine/window"
	"github.com/Faultbox/trefoil/internal/logger"
	"github.com/Faultbox/trefoil/pkg/math"
	"github.com/Faultbox/trefoil/pkg/tube"
)

// entity is an uploaded object with the state needed to draw it.
type entity struct {
	object  *render.Object
	program *shader.Program
	shading shading
	cull    bool
	texture uint32
}

// Demo owns the window, the GPU resources and the scene.
type Demo struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	device   *gpu.Device
	input    *input.Input
	camera   *camera.OrthoCamera
	shaders  *shader.Library
	textures *assets.Table[string, uint32]
	light    lighting.Directional
	shots    *debug.Screenshots

	axes *entity
	knot *entity

	orientation orient.Orientation
	autoRotate  bool
	running     bool
	capture     bool
}

// New opens the window and uploads the scene.
func New(cfg *config.Config) (*Demo, error) {
	d := &Demo{
		cfg:         cfg,
		log:         logger.Named("demo"),
		orientation: orient.New(),
		autoRotate:  cfg.Animation.AutoRotate,
		shots:       debug.NewScreenshots(cfg.Window.ScreenshotDir, "trefoil"),
		light: lighting.Directional{
			Ambient:   cfg.Lighting.Ambient,
			Diffuse:   cfg.Lighting.Diffuse,
			Direction: math.Vec4(cfg.Lighting.Direction),
		},
	}

	var err error
	d.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := d.window.DrawableSize()
	d.device, err = gpu.New(gpu.Config{Width: width, Height: height})
	if err != nil {
		d.window.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	d.input = input.New()
	c := cfg.Camera
	d.camera = camera.NewOrthoCamera(c.Distance, c.Width, c.Height, c.Near, c.Far)
	d.camera.Resize(width, height)
	d.shaders = shader.NewLibrary(shaders.FS)
	d.textures = assets.NewTable[string, uint32](texture.Delete)

	if err := d.buildScene(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *Demo) buildScene() error {
	mesh, err := buildKnot(d.cfg, d.log)
	if err != nil {
		return fmt.Errorf("generating trefoil: %w", err)
	}
	d.knot, err = d.upload("trefoil", mesh)
	if err != nil {
		return err
	}
	// Only a closed surface has an inside that is never seen.
	d.knot.cull = mesh.Primitive() == tube.Triangles && d.cfg.Tube.Closed

	if d.cfg.Tube.Axes {
		if d.axes, err = d.upload("axes", Axes{}); err != nil {
			return err
		}
	}
	return nil
}

// upload sends geometry to the device and resolves its program and texture.
func (d *Demo) upload(name string, g render.Geometry) (*entity, error) {
	obj, err := render.Upload(d.device, name, g)
	if err != nil {
		return nil, err
	}

	e := &entity{object: obj, shading: shadingFor(g)}
	key := e.shading.key()
	if e.program, err = d.shaders.Load(key.Vertex, key.Fragment); err != nil {
		return nil, err
	}
	if e.shading == shadeLit {
		if e.texture, err = d.loadTexture(); err != nil {
			return nil, err
		}
	}

	d.log.Debug("object uploaded",
		zap.String("name", name),
		zap.Int("indices", obj.Count()),
		zap.Stringer("program", key),
	)
	return e, nil
}

// loadTexture returns the configured surface texture, generating wood grain
// when no file is set.
func (d *Demo) loadTexture() (uint32, error) {
	tc := d.cfg.Texture
	key := tc.Path
	if key == "" {
		key = fmt.Sprintf("wood:%d:%d", tc.Size, tc.Rings)
	}
	return d.textures.GetOrLoad(key, func() (uint32, error) {
		if tc.Path == "" {
			return texture.Upload(texture.Wood(tc.Size, tc.Rings))
		}
		img, err := texture.Load(tc.Path)
		if err != nil {
			return 0, err
		}
		d.log.Info("texture loaded",
			zap.String("path", tc.Path),
			zap.Int("width", img.Rect.Dx()),
			zap.Int("height", img.Rect.Dy()),
		)
		return texture.Upload(img)
	})
}

// Run drives the loop until the window closes or Escape is pressed.
func (d *Demo) Run() error {
	d.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	d.log.Info("starting render loop")
	for d.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if d.input.Update() {
			break
		}
		d.handleEvents()

		rate := rotationRate(d.autoRotate, d.cfg.Animation.Speed, d.input.IsKeyDown)
		d.orientation = d.orientation.Advance(rate, dt)

		d.render()
		if d.capture {
			d.screenshot()
			d.capture = false
		}
		d.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			d.log.Debug("fps",
				zap.Int("frames", frameCount),
				zap.Float32("angle_y", d.orientation.Angles.Y),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (d *Demo) handleEvents() {
	for _, event := range d.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := d.window.DrawableSize()
			d.device.Resize(width, height)
			d.camera.Resize(width, height)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				d.running = false
			case sdl.SCANCODE_SPACE:
				d.autoRotate = !d.autoRotate
				d.log.Debug("auto rotation toggled", zap.Bool("on", d.autoRotate))
			case sdl.SCANCODE_R:
				d.orientation = orient.New()
			case sdl.SCANCODE_F12:
				d.capture = true
			}
		}
	}
}

func (d *Demo) render() {
	d.device.Begin()
	if d.axes != nil {
		d.draw(d.axes, math.Identity(), math.Identity())
	}
	model, normal := d.orientation.Matrices()
	d.draw(d.knot, model, normal)
}

func (d *Demo) draw(e *entity, model, normal math.Mat4) {
	d.device.UseProgram(e.program)
	d.device.SetMat4(render.UniformView, d.camera.ViewMatrix())
	d.device.SetMat4(render.UniformProjection, d.camera.ProjectionMatrix())

	switch e.shading {
	case shadeFlat:
		d.device.SetVec3("u_colour", knotColour)
	case shadeLit:
		texture.Bind(0, e.texture)
		d.device.SetInt("u_texture", 0)
		d.light.Apply(d.device)
	}

	d.device.SetCulling(e.cull)
	e.object.Draw(d.device, model, normal)
}

// screenshot saves the frame just rendered.
func (d *Demo) screenshot() {
	pixels, width, height := d.device.ReadPixels()
	path, err := d.shots.Save(pixels, width, height)
	if err != nil {
		d.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	d.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, the device and the window.
func (d *Demo) Close() {
	d.log.Info("closing demo")
	if d.textures != nil {
		d.textures.Close()
	}
	if d.shaders != nil {
		d.shaders.Close()
	}
	if d.device != nil {
		d.device.Close()
	}
	if d.window != nil {
		d.window.Close()
	}
}
