// Package material holds shader programs' uniform values on the CPU side.
//
// A Material is the single place host code writes uniforms to. The renderer
// re-uploads every value each frame, so nothing is cached on the GPU side.
package material

import "fmt"

// Kind identifies the GLSL type of a uniform value.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindVec2
	KindVec3
	KindVec4
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a tagged uniform value.
type Value struct {
	Kind Kind
	F    [4]float32 // float/vec components
	I    int32
}

// Material is a named set of uniform values for one shader program.
type Material struct {
	Name string

	values map[string]Value
	order  []string
}

// New creates an empty material.
func New(name string) *Material {
	return &Material{
		Name:   name,
		values: make(map[string]Value),
	}
}

func (m *Material) set(name string, v Value) {
	if _, ok := m.values[name]; !ok {
		m.order = append(m.order, name)
	}
	m.values[name] = v
}

// SetFloat sets a float uniform.
func (m *Material) SetFloat(name string, v float32) {
	m.set(name, Value{Kind: KindFloat, F: [4]float32{v}})
}

// SetInt sets an int (or bool) uniform.
func (m *Material) SetInt(name string, v int32) {
	m.set(name, Value{Kind: KindInt, I: v})
}

// SetVec2 sets a vec2 uniform.
func (m *Material) SetVec2(name string, x, y float32) {
	m.set(name, Value{Kind: KindVec2, F: [4]float32{x, y}})
}

// SetVec3 sets a vec3 uniform.
func (m *Material) SetVec3(name string, v [3]float32) {
	m.set(name, Value{Kind: KindVec3, F: [4]float32{v[0], v[1], v[2]}})
}

// SetVec4 sets a vec4 uniform.
func (m *Material) SetVec4(name string, v [4]float32) {
	m.set(name, Value{Kind: KindVec4, F: v})
}

// Value returns the raw value of a uniform.
func (m *Material) Value(name string) (Value, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Float returns a float uniform. ok is false if unset or of another kind.
func (m *Material) Float(name string) (float32, bool) {
	v, ok := m.values[name]
	if !ok || v.Kind != KindFloat {
		return 0, false
	}
	return v.F[0], true
}

// Int returns an int uniform.
func (m *Material) Int(name string) (int32, bool) {
	v, ok := m.values[name]
	if !ok || v.Kind != KindInt {
		return 0, false
	}
	return v.I, true
}

// Vec2 returns a vec2 uniform.
func (m *Material) Vec2(name string) ([2]float32, bool) {
	v, ok := m.values[name]
	if !ok || v.Kind != KindVec2 {
		return [2]float32{}, false
	}
	return [2]float32{v.F[0], v.F[1]}, true
}

// Vec3 returns a vec3 uniform.
func (m *Material) Vec3(name string) ([3]float32, bool) {
	v, ok := m.values[name]
	if !ok || v.Kind != KindVec3 {
		return [3]float32{}, false
	}
	return [3]float32{v.F[0], v.F[1], v.F[2]}, true
}

// Len returns the number of uniforms set.
func (m *Material) Len() int {
	return len(m.order)
}

// Each calls fn for every uniform in the order they were first set.
func (m *Material) Each(fn func(name string, v Value)) {
	for _, name := range m.order {
		fn(name, m.values[name])
	}
}
