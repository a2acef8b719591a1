package name_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/viant/phpda/inspector/name"
	"gopkg.in/yaml.v3"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		description string
		input       string
		parts       []string
		text        string
	}{
		{description: "fully qualified", input: `\Foo\Bar`, parts: []string{"Foo", "Bar"}, text: `Foo\Bar`},
		{description: "qualified", input: `Foo\Bar\Baz`, parts: []string{"Foo", "Bar", "Baz"}, text: `Foo\Bar\Baz`},
		{description: "single segment", input: "Foo", parts: []string{"Foo"}, text: "Foo"},
		{description: "empty", input: "", parts: []string{}, text: ""},
		{description: "separator only", input: `\`, parts: []string{}, text: ""},
		{description: "empty segment kept", input: `Foo\\Bar`, parts: []string{"Foo", "", "Bar"}, text: `Foo\\Bar`},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual := name.Parse(tc.input)
			assert.Equal(t, len(tc.parts), actual.Len())
			if len(tc.parts) > 0 {
				assert.Equal(t, tc.parts, actual.Parts())
			}
			assert.Equal(t, tc.text, actual.String())
		})
	}
}

func TestName_Slice(t *testing.T) {
	n := name.New("Foo", "Bar", "Baz")
	assert.Equal(t, `Bar\Baz`, n.Slice(1, 3).String())
	assert.Equal(t, `Foo`, n.Slice(-1, 1).String())
	assert.Equal(t, `Foo\Bar\Baz`, n.Slice(0, 10).String())
	assert.True(t, n.Slice(3, 5).IsEmpty())
	assert.True(t, n.Slice(2, 1).IsEmpty())
}

func TestName_Immutable(t *testing.T) {
	parts := []string{"Foo", "Bar"}
	n := name.New(parts...)
	parts[0] = "Changed"
	assert.Equal(t, `Foo\Bar`, n.String())

	copied := n.Parts()
	copied[1] = "Changed"
	assert.Equal(t, `Foo\Bar`, n.String())
}

func TestName_Append(t *testing.T) {
	n := name.Parse(`App\Model`).Append(name.Parse("User"))
	assert.Equal(t, `App\Model\User`, n.String())
	assert.Equal(t, "App", n.First())
	assert.Equal(t, "User", n.Last())
	assert.False(t, n.HasEmptySegment())
	assert.True(t, name.Parse(`App\\User`).HasEmptySegment())
}

func TestName_YAML(t *testing.T) {
	type holder struct {
		Name name.Name `yaml:"name,omitempty"`
	}
	data, err := yaml.Marshal(holder{Name: name.Parse(`App\User`)})
	assert.NoError(t, err)
	var roundTrip holder
	assert.NoError(t, yaml.Unmarshal(data, &roundTrip))
	assert.Equal(t, `App\User`, roundTrip.Name.String())

	data, err = yaml.Marshal(holder{})
	assert.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	var decoded holder
	assert.NoError(t, yaml.Unmarshal([]byte(`name: \Vendor\Lib`), &decoded))
	assert.Equal(t, []string{"Vendor", "Lib"}, decoded.Name.Parts())
}
