//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"strings"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/wheelsync/internal/domain/entities"
)

// WheelBuilder helps create wheel file names with a fluent interface.
type WheelBuilder struct {
	*testkit.BaseBuilder
	pkg     string
	version string
	tags    []string
}

// NewWheelBuilder creates a new wheel builder with sensible defaults.
func NewWheelBuilder() *WheelBuilder {
	return &WheelBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		pkg:         "foo",
		version:     "1.0",
		tags:        []string{"py3", "none", "any"},
	}
}

// WithPackage sets the package name.
func (b *WheelBuilder) WithPackage(pkg string) *WheelBuilder {
	b.pkg = pkg
	return b
}

// WithVersion sets the version.
func (b *WheelBuilder) WithVersion(version string) *WheelBuilder {
	b.version = version
	return b
}

// WithTags sets the compatibility tags; none yields `<package>-<version>.whl`.
func (b *WheelBuilder) WithTags(tags ...string) *WheelBuilder {
	b.tags = tags
	return b
}

// Build creates the wheel (satisfies testkit.Builder interface).
func (b *WheelBuilder) Build() interface{} {
	return b.BuildWheel()
}

// BuildName returns the wheel file name.
func (b *WheelBuilder) BuildName() string {
	parts := append([]string{b.pkg, b.version}, b.tags...)
	return strings.Join(parts, "-") + entities.WheelSuffix
}

// BuildWheel creates the wheel with a concrete return type.
func (b *WheelBuilder) BuildWheel() entities.Wheel {
	return entities.Wheel{
		Path:    b.BuildName(),
		Package: b.pkg,
		Version: b.version,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *WheelBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.pkg = "foo"
	b.version = "1.0"
	b.tags = []string{"py3", "none", "any"}
	return b
}

// Clone creates a deep copy of the WheelBuilder.
func (b *WheelBuilder) Clone() testkit.Builder {
	return &WheelBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		pkg:         b.pkg,
		version:     b.version,
		tags:        append([]string(nil), b.tags...),
	}
}
