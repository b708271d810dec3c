package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/orient/internal/config"
	"github.com/taigrr/orient/internal/logging"
	"github.com/taigrr/orient/pkg/math3d"
	"github.com/taigrr/orient/pkg/orientation"
	"github.com/taigrr/orient/pkg/render"
)

const viewHelp = `Controls:
  Mouse drag  - Orbit
  Scroll      - Zoom in/out
  W/S/A/D     - Pitch and yaw
  Space       - Toggle sensor/aligned view
  G           - Toggle grid
  B           - Toggle device body
  C           - Toggle components
  R           - Reset view
  ?           - Toggle HUD
  Esc         - Quit`

func newViewCmd(logs *logging.SlogManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the frame and vector in an interactive terminal viewer",
		Long:  "Draws the frame, device body and measured vector as a wireframe.\n\n" + viewHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(cmd, map[string]string{
				"view.fps":            "fps",
				"view.background":     "background",
				"view.cameraDistance": "distance",
			}); err != nil {
				return err
			}
			fps := config.GetInt("view.fps")
			if fps <= 0 {
				return fmt.Errorf("invalid fps %d", fps)
			}
			bg, err := parseColor(config.GetString("view.background"))
			if err != nil {
				return err
			}

			r, err := readingFromFlags(cmd)
			if err != nil {
				return err
			}
			res, err := orientation.Resolve(r)
			if err != nil {
				return err
			}

			v := newViewer(res, fps, bg, config.GetFloat64("view.cameraDistance"))
			logs.Logger().Debug("Starting viewer", "fps", fps)
			return v.run(cmd.Context())
		},
	}
	addReadingFlags(cmd, true)
	f := cmd.Flags()
	f.Int("fps", 60, "target FPS")
	f.String("background", "30,30,40", "background color (R,G,B)")
	f.Float64("distance", 0, "camera distance (0 fits the scene)")
	return cmd
}

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// OrbitState holds the viewer orbit with harmonica spring physics.
type OrbitState struct {
	Pitch, Yaw RotationAxis
	fps        int
}

func NewOrbitState(fps int) *OrbitState {
	return &OrbitState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		fps:   fps,
	}
}

func (o *OrbitState) Update() {
	o.Pitch.Update()
	o.Yaw.Update()
}

func (o *OrbitState) ApplyImpulse(pitch, yaw float64) {
	o.Pitch.Velocity += pitch
	o.Yaw.Velocity += yaw
}

func (o *OrbitState) Reset() {
	o.Pitch = NewRotationAxis(o.fps)
	o.Yaw = NewRotationAxis(o.fps)
}

const (
	minDistance = 1.0
	maxDistance = 20.0
	zoomStep    = 0.25
)

// viewer is the state shared between the event goroutine and the render
// loop. All fields below mu are guarded by it.
type viewer struct {
	fps        int
	background render.Color

	mu       sync.Mutex
	scene    render.Scene
	orbit    *OrbitState
	torque   struct{ pitch, yaw float64 }
	distance float64 // 0 until the first frame fits the camera
	showHUD  bool

	mouseDown  bool
	lastMouseX int
	lastMouseY int

	// Latest terminal size not yet applied by the render loop.
	resize *uv.WindowSizeEvent

	fpsFrames int
	fpsTime   time.Time
	fpsValue  float64
}

func newViewer(res orientation.Result, fps int, bg render.Color, distance float64) *viewer {
	v := &viewer{
		fps:        fps,
		background: bg,
		scene: render.Scene{
			Result:   res,
			Aligned:  true,
			ShowGrid: true,
			ShowBody: true,
		},
		orbit:    NewOrbitState(fps),
		distance: distance,
		showHUD:  true,
		fpsTime:  time.Now(),
	}
	// Start slightly above and to the side so depth reads at once.
	v.orbit.Yaw.Position = math3d.Radians(30)
	v.orbit.Pitch.Position = math3d.Radians(20)
	return v
}

// takeResize returns and clears the pending terminal size. mu must be
// held.
func (v *viewer) takeResize() *uv.WindowSizeEvent {
	size := v.resize
	v.resize = nil
	return size
}

// handle applies one terminal event. It returns false when the viewer
// should quit.
func (v *viewer) handle(ev uv.Event) bool {
	const torqueStrength = 3.0

	v.mu.Lock()
	defer v.mu.Unlock()

	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c", "q"):
			return false
		case ev.MatchString("w", "up"):
			v.torque.pitch = -torqueStrength
		case ev.MatchString("s", "down"):
			v.torque.pitch = torqueStrength
		case ev.MatchString("a", "left"):
			v.torque.yaw = -torqueStrength
		case ev.MatchString("d", "right"):
			v.torque.yaw = torqueStrength
		case ev.MatchString("space"):
			v.scene.Aligned = !v.scene.Aligned
		case ev.MatchString("g"):
			v.scene.ShowGrid = !v.scene.ShowGrid
		case ev.MatchString("b"):
			v.scene.ShowBody = !v.scene.ShowBody
		case ev.MatchString("c"):
			v.scene.ShowComponents = !v.scene.ShowComponents
		case ev.MatchString("r"):
			v.orbit.Reset()
			v.distance = 0
		case ev.Text == "+" || ev.MatchString("=", "shift+="):
			v.zoom(-zoomStep)
		case ev.MatchString("-", "_"):
			v.zoom(zoomStep)
		case ev.MatchString("?", "shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.KeyReleaseEvent:
		switch {
		case ev.MatchString("w", "up", "s", "down"):
			v.torque.pitch = 0
		case ev.MatchString("a", "left", "d", "right"):
			v.torque.yaw = 0
		}

	case uv.WindowSizeEvent:
		v.resize = &ev

	case uv.MouseClickEvent:
		v.mouseDown = true
		v.lastMouseX, v.lastMouseY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		v.mouseDown = false

	case uv.MouseMotionEvent:
		if v.mouseDown {
			dx := ev.X - v.lastMouseX
			dy := ev.Y - v.lastMouseY
			v.orbit.ApplyImpulse(float64(dy)*0.03, float64(dx)*0.03)
			v.lastMouseX, v.lastMouseY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.zoom(-zoomStep)
		case uv.MouseWheelDown:
			v.zoom(zoomStep)
		}
	}
	return true
}

// zoom changes the camera distance. Callers hold mu.
func (v *viewer) zoom(delta float64) {
	if v.distance == 0 {
		// not fitted yet
		return
	}
	v.distance = math.Min(maxDistance, math.Max(minDistance, v.distance+delta))
}

// step advances the orbit by dt seconds. Callers hold mu.
func (v *viewer) step(dt float64) {
	// Key release events are unreliable, so held torque decays on its own.
	v.orbit.ApplyImpulse(v.torque.pitch*dt, v.torque.yaw*dt)
	v.torque.pitch *= 0.9
	v.torque.yaw *= 0.9

	v.orbit.Update()

	// Keep the camera from flipping over the poles.
	limit := math.Pi/2 - 0.01
	v.orbit.Pitch.Position = math.Max(-limit, math.Min(limit, v.orbit.Pitch.Position))

	v.scene.Yaw = v.orbit.Yaw.Position
	v.scene.Pitch = v.orbit.Pitch.Position
}

// frame renders the current state into scr. Callers hold mu.
func (v *viewer) frame(scr uv.Screen) {
	area := scr.Bounds()
	w, h := area.Dx(), area.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	// Each cell shows two vertically stacked pixels.
	fb := render.NewFramebuffer(w, h*2)
	fb.Clear(v.background)

	cam := render.NewCamera()
	cam.SetAspectRatio(float64(fb.Width) / float64(fb.Height))
	cam.Fit(v.scene.Radius() * 1.1)
	if v.distance == 0 {
		v.distance = cam.Position.Len()
	}
	cam.SetPosition(math3d.V3(0, 0, v.distance))
	cam.LookAt(math3d.Zero3())

	v.scene.Draw(render.NewWireframe(cam, fb))
	fb.Draw(scr, area)

	if v.showHUD {
		v.drawHUD(scr)
	}
}

func (v *viewer) drawHUD(scr uv.Screen) {
	area := scr.Bounds()
	hudBg := render.RGB(0, 0, 0)

	mode := "SENSOR"
	if v.scene.Aligned {
		mode = "ALIGNED"
	}
	render.DrawText(scr, area.Min.X, area.Min.Y, fmt.Sprintf(" %.0f FPS  %s ", v.fpsValue, mode), render.ColorGreen, hudBg)

	m := v.scene.Result.Magnitudes
	row := area.Max.Y - 3
	for _, a := range orientation.Axes {
		text := fmt.Sprintf(" %-5s %12.4f %-5s ", a, m.Axis(a), m.Direction(a))
		render.DrawText(scr, area.Min.X, row, text, render.AxisColor(a), hudBg)
		row++
	}

	hint := " ? help  space view  esc quit "
	render.DrawText(scr, max(area.Max.X-len(hint), area.Min.X), area.Min.Y, hint, render.ColorGray, hudBg)
}

// updateFPS updates the FPS counter (call once per frame). Callers hold mu.
func (v *viewer) updateFPS() {
	v.fpsFrames++
	elapsed := time.Since(v.fpsTime)
	if elapsed >= time.Second {
		v.fpsValue = float64(v.fpsFrames) / elapsed.Seconds()
		v.fpsFrames = 0
		v.fpsTime = time.Now()
	}
}

func (v *viewer) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-term.Events():
				if !ok {
					cancel()
					return
				}
				if !v.handle(ev) {
					cancel()
					return
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(v.fps)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		v.mu.Lock()
		if size := v.takeResize(); size != nil {
			term.Erase()
			term.Resize(size.Width, size.Height)
		}
		v.step(dt)
		v.frame(term)
		v.updateFPS()
		v.mu.Unlock()

		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
