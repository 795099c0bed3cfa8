package picking

import (
	"github.com/goccy/go-json"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"

	"github.com/phanxgames/picking/report"
)

// scriptStep represents a single action in a pointer script.
type scriptStep struct {
	Action   string  `json:"action"`
	Button   string  `json:"button,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Ease     string  `json:"ease,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// pointerScript is the top-level JSON structure for a pointer script.
type pointerScript struct {
	Steps []scriptStep `json:"steps"`
}

var scriptButtons = map[string]PointerButton{
	"":          ButtonPrimary,
	"primary":   ButtonPrimary,
	"secondary": ButtonSecondary,
	"middle":    ButtonMiddle,
}

var scriptEases = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
}

// ScriptRunner feeds a scripted sequence of pointer actions into an
// Injector, one step each time the injector drains.
type ScriptRunner struct {
	steps  []scriptStep
	cursor int
	inj    *Injector
}

// ScriptComponent attaches a ScriptRunner to an entity.
var ScriptComponent = donburi.NewComponentType[*ScriptRunner]()

var scriptQuery = query.NewQuery(filter.Contains(ScriptComponent))

// LoadPointerScript parses a JSON pointer script. Every step is validated
// up front so a bad script fails before anything is injected.
//
//	{"steps": [
//	  {"action": "click", "x": 10, "y": 20},
//	  {"action": "drag", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "duration": 0.5, "ease": "inOutQuad"},
//	  {"action": "wait", "frames": 30}
//	]}
func LoadPointerScript(data []byte) (*ScriptRunner, error) {
	var script pointerScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, report.Wrap(err, report.KindScriptParse, "parse pointer script")
	}
	if len(script.Steps) == 0 {
		return nil, report.New(report.KindScriptParse, "parse pointer script: no steps")
	}
	for i, st := range script.Steps {
		if err := validateStep(st); err != nil {
			return nil, report.Wrapf(err, report.KindScriptParse, "parse pointer script: step %d", i)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

func validateStep(st scriptStep) error {
	switch st.Action {
	case "press", "release", "move", "glide", "click", "drag", "wait", "cancel":
	default:
		return report.Newf(report.KindScriptParse, "unknown action %q", st.Action)
	}
	if _, ok := scriptButtons[st.Button]; !ok {
		return report.Newf(report.KindScriptParse, "unknown button %q", st.Button)
	}
	if _, ok := scriptEases[st.Ease]; !ok {
		return report.Newf(report.KindScriptParse, "unknown ease %q", st.Ease)
	}
	if st.Duration < 0 || st.Frames < 0 {
		return report.New(report.KindScriptParse, "negative duration or frames")
	}
	return nil
}

// Attach binds the runner to inj and spawns an entity holding it, so
// StepScripts drives it.
func (r *ScriptRunner) Attach(world donburi.World, inj *Injector) *donburi.Entry {
	r.inj = inj
	entry := world.Entry(world.Create(ScriptComponent))
	ScriptComponent.SetValue(entry, r)
	return entry
}

// Done reports whether every step has been handed to the injector and the
// injector has drained.
func (r *ScriptRunner) Done() bool {
	return r.cursor >= len(r.steps) && (r.inj == nil || !r.inj.Pending())
}

// step queues the next script step once the injector is idle.
func (r *ScriptRunner) step() {
	if r.inj == nil || r.inj.Pending() || r.cursor >= len(r.steps) {
		return
	}
	st := r.steps[r.cursor]
	r.cursor++

	b := scriptButtons[st.Button]
	fn := scriptEases[st.Ease]
	switch st.Action {
	case "press":
		r.inj.Press(b)
	case "release":
		r.inj.Release(b)
	case "move":
		r.inj.MoveTo(st.X, st.Y)
	case "glide":
		r.inj.Glide(st.X, st.Y, st.Duration, fn)
	case "click":
		r.inj.Click(st.X, st.Y, b)
	case "drag":
		r.inj.Drag(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, b, st.Duration, fn)
	case "wait":
		r.inj.Wait(st.Frames)
	case "cancel":
		r.inj.Cancel()
	}
}

// StepScripts advances every attached script. Must run before
// StepInjectors so a queued step is injected the same tick.
func StepScripts(e *ecs.ECS) {
	stepScripts(e.World)
}

func stepScripts(world donburi.World) {
	scriptQuery.Each(world, func(entry *donburi.Entry) {
		(*ScriptComponent.Get(entry)).step()
	})
}
