package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kasuboski/arrqueue/config/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	t.Run("fail to read in config", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("expected testing error")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("fake-config.yaml")
		cu.EXPECT().ReadInConfig().Times(1).Return(wantErr)
		c, err := New(cu)
		if err == nil {
			t.Errorf("TestNew() err = %v, want %v", err, wantErr)
		}

		wantConfig := Config{}
		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %v, want %v", c, wantConfig)
		}
	})

	t.Run("fail to unmarshal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("bad yaml")
		cu.EXPECT().ConfigFileUsed().Return("")
		cu.EXPECT().Unmarshal(gomock.Any()).Return(wantErr)
		_, err := New(cu)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("success with file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("./testing/config.yaml")
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{
			Server: Server{Port: 9090},
			Instances: []Instance{
				{
					ID:      "tv",
					Name:    "Sonarr",
					Service: "sonarr",
					Scheme:  "https",
					Host:    "sonarr.local:8989",
					APIKey:  "sonarr-key",
				},
				{
					ID:       "films",
					Service:  "radarr",
					Host:     "radarr.local:7878",
					BasePath: "/radarr",
					APIKey:   "radarr-key",
				},
			},
			Manager: Manager{
				RefreshInterval: 30 * time.Second,
				PageSize:        100,
			},
			HTTP: HTTP{
				MaxRetries:  3,
				BaseBackoff: 2 * time.Second,
				Timeout:     15 * time.Second,
			},
		}

		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %+v, want %+v", c, wantConfig)
		}
	})

	t.Run("success without file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("")
		cu.SetDefault("server.port", 8080)
		cu.Set("instances", []map[string]any{
			{"id": "tv", "service": "sonarr", "host": "localhost:8989", "apiKey": "key"},
		})
		c, err := New(cu)
		require.NoError(t, err)

		assert.Equal(t, 8080, c.Server.Port)
		require.Len(t, c.Instances, 1)
		assert.Equal(t, "tv", c.Instances[0].ID)
	})

	t.Run("no instances", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("")
		_, err := New(cu)
		assert.ErrorIs(t, err, ErrNoInstances)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Instance{ID: "tv", Service: "sonarr", Host: "localhost", APIKey: "key"}

	tests := []struct {
		name      string
		instances []Instance
		wantErr   bool
	}{
		{name: "valid", instances: []Instance{valid}},
		{name: "unknown service", instances: []Instance{{ID: "x", Service: "lidarr", Host: "h", APIKey: "k"}}, wantErr: true},
		{name: "missing api key", instances: []Instance{{ID: "x", Service: "radarr", Host: "h"}}, wantErr: true},
		{name: "bad scheme", instances: []Instance{{ID: "x", Service: "radarr", Host: "h", APIKey: "k", Scheme: "ftp"}}, wantErr: true},
		{name: "duplicate ids", instances: []Instance{valid, valid}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Config{Instances: tt.instances}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestInstance(t *testing.T) {
	i := Instance{ID: "films", Host: "radarr:7878", BasePath: "radarr"}
	u := i.URL()
	assert.Equal(t, "http://radarr:7878/radarr", u.String())
	assert.Equal(t, "films", i.DisplayName())

	i.Name = "Radarr"
	i.Scheme = "https"
	i.BasePath = ""
	u = i.URL()
	assert.Equal(t, "https://radarr:7878/", u.String())
	assert.Equal(t, "Radarr", i.DisplayName())
}
