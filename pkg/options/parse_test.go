package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "equals form",
			args: []string{"--project=my-project", "--num_workers=3"},
			want: map[string]any{Project: "my-project", NumWorkers: 3},
		},
		{
			name: "separate value",
			args: []string{"--project", "my-project", "--region", "us-central1"},
			want: map[string]any{Project: "my-project", Region: "us-central1"},
		},
		{
			name: "bool flags",
			args: []string{"--update", "--streaming"},
			want: map[string]any{Update: true, Streaming: true},
		},
		{
			name: "bool flag does not consume next token",
			args: []string{"--streaming", "--project", "p"},
			want: map[string]any{Streaming: true, Project: "p"},
		},
		{
			name: "repeated list option",
			args: []string{"--experiments=a", "--experiments", "b"},
			want: map[string]any{Experiments: []string{"a", "b"}},
		},
		{
			name: "trailing bare flag",
			args: []string{"--project=p", "--some_flag"},
			want: map[string]any{Project: "p", "some_flag": true},
		},
		{
			name: "empty tokens ignored",
			args: []string{"", "--project=p", "  "},
			want: map[string]any{Project: "p"},
		},
		{
			name: "empty value kept",
			args: []string{"--type_check_additional="},
			want: map[string]any{TypeCheckAdditional: ""},
		},
		{
			name:    "positional argument",
			args:    []string{"project"},
			wantErr: true,
		},
		{
			name:    "missing name",
			args:    []string{"--=x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Map())
		})
	}
}

func TestParseInto_Overrides(t *testing.T) {
	s := FromMap(map[string]any{Project: "old", Region: "r"})
	require.NoError(t, s.ParseInto([]string{"--project=new"}))
	assert.Equal(t, "new", s.String(Project))
	assert.Equal(t, "r", s.String(Region))
}

func TestParseAssignments(t *testing.T) {
	s := New()
	require.NoError(t, s.ParseAssignments([]string{
		"project=p",
		"environment_options=process_command=run.sh",
	}))
	assert.Equal(t, "p", s.String(Project))
	got, _ := s.List(EnvironmentOptions)
	assert.Equal(t, []string{"process_command=run.sh"}, got)

	assert.Error(t, s.ParseAssignments([]string{"no-equals"}))
	assert.Error(t, s.ParseAssignments([]string{"=value"}))
}
