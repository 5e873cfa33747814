package scene

// Command is one entry of the flat whiteboard command list: an alternative
// serialization of a processed visualization for renderers that consume a
// linear instruction stream instead of a scene graph.
type Command struct {
	Op      string  `json:"op" bson:"op"`
	Time    float64 `json:"time" bson:"time"` // seconds from visualization start
	SceneID string  `json:"scene_id" bson:"scene_id"`

	Shape     *Shape     `json:"shape,omitempty" bson:"shape,omitempty"`
	ShapeRef  int        `json:"shape_ref,omitempty" bson:"shape_ref,omitempty"`
	Animation *Animation `json:"animation,omitempty" bson:"animation,omitempty"`
	Audio     *Audio     `json:"audio,omitempty" bson:"audio,omitempty"`
}

// Command opcodes.
const (
	OpClear   = "clear"
	OpDraw    = "draw"
	OpAnimate = "animate"
	OpNarrate = "narrate"
)

// Commands flattens the visualization into a time-ordered command list.
//
// Each scene contributes a clear command at its start, a draw command per
// shape, an animate command per animation (offset by its delay), and a
// narrate command when the scene carries audio. Commands inherit the
// determinism of the processed scenes: same input, same list.
func (v *Visualization) Commands() []Command {
	var out []Command
	offset := 0.0

	for _, sc := range v.Scenes {
		out = append(out, Command{Op: OpClear, Time: offset, SceneID: sc.ID})

		for i := range sc.Shapes {
			out = append(out, Command{
				Op:      OpDraw,
				Time:    offset,
				SceneID: sc.ID,
				Shape:   &sc.Shapes[i],
			})
		}

		for i := range sc.Animations {
			anim := &sc.Animations[i]
			out = append(out, Command{
				Op:        OpAnimate,
				Time:      offset + anim.Delay,
				SceneID:   sc.ID,
				ShapeRef:  anim.ShapeIndex,
				Animation: anim,
			})
		}

		if sc.Audio != nil {
			out = append(out, Command{
				Op:      OpNarrate,
				Time:    offset + sc.Audio.StartTime,
				SceneID: sc.ID,
				Audio:   sc.Audio,
			})
		}

		offset += sc.Duration
	}

	return out
}
