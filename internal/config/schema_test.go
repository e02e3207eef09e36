package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchema(t *testing.T) {
	valid := func() *Raw {
		return &Raw{
			Metadata: RawMetadata{Name: "my-model"},
			Storage:  RawStorage{URI: "s3://bucket/model/"},
			Runtime:  RawRuntime{Framework: "triton", Type: "cluster"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Raw)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(r *Raw) {},
			wantErr: false,
		},
		{
			name:    "empty runtime section is allowed",
			mutate:  func(r *Raw) { r.Runtime = RawRuntime{} },
			wantErr: false,
		},
		{
			name:    "missing name",
			mutate:  func(r *Raw) { r.Metadata.Name = "" },
			wantErr: true,
		},
		{
			name:    "missing storage uri",
			mutate:  func(r *Raw) { r.Storage.URI = "" },
			wantErr: true,
		},
		{
			name:    "unknown framework",
			mutate:  func(r *Raw) { r.Runtime.Framework = "tensorflow-serving" },
			wantErr: true,
		},
		{
			name:    "unknown runtime type",
			mutate:  func(r *Raw) { r.Runtime.Type = "managed" },
			wantErr: true,
		},
		{
			name:    "unknown deployment mode",
			mutate:  func(r *Raw) { r.Runtime.DeploymentMode = "Serverless" },
			wantErr: true,
		},
		{
			name:    "valid deployment mode",
			mutate:  func(r *Raw) { r.Runtime.DeploymentMode = "RawDeployment" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid()
			tt.mutate(raw)
			err := CheckSchema(raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrSchema)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCheckSchema_ReportsFirstViolationOnly(t *testing.T) {
	raw := &Raw{Runtime: RawRuntime{Framework: "bogus"}}
	err := CheckSchema(raw)
	require.Error(t, err)
	// Missing name is reported before the framework problem.
	assert.Contains(t, err.Error(), "metadata.name")
	assert.NotContains(t, err.Error(), "framework")
}
