package registry_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-opportunities/internal/mocks"
	"github.com/feral-file/ff-opportunities/internal/registry"
)

func TestCuratedRegistry_Load(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr  string // Error message to assert, empty means no error expected
		validateFunc func(t *testing.T, records []registry.CuratedRecord)
	}{
		{
			name: "successful load with valid JSON",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("curated.json").
					Return([]byte(`{
					"opportunities": [
						{
							"id": "base-onchain-summer",
							"type": "airdrop",
							"title": "Onchain Summer",
							"protocol": "Base",
							"chains": ["base"],
							"created_at": "2026-05-01T00:00:00Z",
							"snapshot_date": "2026-07-01T00:00:00Z",
							"requirements": {"min_wallet_age_days": 30, "chains": ["base"]}
						}
					]
				}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, records []registry.CuratedRecord) {
				require.Len(t, records, 1)
				r := records[0]
				assert.Equal(t, "base-onchain-summer", r.ID)
				assert.Equal(t, "airdrop", r.Type)
				assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), r.CreatedAt)
				require.NotNil(t, r.SnapshotDate)
				require.NotNil(t, r.Requirements)
				require.NotNil(t, r.Requirements.MinWalletAgeDays)
				assert.Equal(t, 30, *r.Requirements.MinWalletAgeDays)
				assert.Nil(t, r.Requirements.MinTxCount)
			},
		},
		{
			name: "empty file",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.EXPECT().ReadFile("curated.json").Return([]byte(`{}`), nil)
				mockJSON.EXPECT().Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(data []byte, v interface{}) error {
						return json.Unmarshal(data, v)
					})
			},
			validateFunc: func(t *testing.T, records []registry.CuratedRecord) {
				assert.Empty(t, records)
			},
		},
		{
			name: "file read error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.EXPECT().ReadFile("curated.json").Return(nil, errors.New("permission denied"))
			},
			expectedErr: "failed to read curated file",
		},
		{
			name: "invalid JSON",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.EXPECT().ReadFile("curated.json").Return([]byte(`{invalid`), nil)
				mockJSON.EXPECT().Unmarshal(gomock.Any(), gomock.Any()).Return(errors.New("invalid character"))
			},
			expectedErr: "failed to parse curated JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFS := mocks.NewMockFileSystem(ctrl)
			mockJSON := mocks.NewMockJSON(ctrl)
			tt.setupMocks(mockFS, mockJSON)

			records, err := registry.NewCuratedRegistry(mockFS, mockJSON, "curated.json").Load()
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			tt.validateFunc(t, records)
		})
	}
}
