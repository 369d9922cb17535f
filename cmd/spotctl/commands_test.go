package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"spotapi/internal/model"
	"spotapi/internal/service"
	serviceMocks "spotapi/internal/service/mocks"
)

func run(t *testing.T, svc service.SpotService, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(func(context.Context) (service.SpotService, error) { return svc, nil })
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList(t *testing.T) {
	svc := new(serviceMocks.MockSpotService)
	spot := model.Spot{Name: "Beach", Description: "Sunny"}.WithImageRef("file:///data/img_1.jpg")
	svc.On("List", mock.Anything).Return(&service.SpotListResult{Items: []model.Spot{spot}, Total: 1}, nil).Once()

	out, err := run(t, svc, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Beach")
	assert.Contains(t, out, "file:///data/img_1.jpg")
	assert.Contains(t, out, "(1 spots)")
	svc.AssertExpectations(t)
}

func TestList_FetchFailed(t *testing.T) {
	svc := new(serviceMocks.MockSpotService)
	svc.On("List", mock.Anything).Return(&service.SpotListResult{}, service.ErrFetchFailed).Once()

	_, err := run(t, svc, "list")
	assert.ErrorIs(t, err, service.ErrFetchFailed)
}

func TestAdd_RefetchesAfterSave(t *testing.T) {
	img := filepath.Join(t.TempDir(), "beach.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpeg"), 0o644))

	svc := new(serviceMocks.MockSpotService)
	stored := model.Spot{Name: "Beach", Description: "Sunny"}.WithImageRef("file:///data/img_1.jpg")
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.SpotInput) bool {
		return in.Name == "Beach" && in.Description == "Sunny" && in.Image != nil && in.ImageSize == 4
	})).Return(&stored, nil).Once()
	svc.On("List", mock.Anything).Return(&service.SpotListResult{Items: []model.Spot{stored}, Total: 1}, nil).Once()

	out, err := run(t, svc, "add", "--name", "Beach", "--description", "Sunny", "--image", img)
	require.NoError(t, err)
	assert.Contains(t, out, "Sunny")
	svc.AssertExpectations(t)
}

func TestAdd_ValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no name", []string{"add", "--description", "Sunny"}, service.ErrNameRequired},
		{"no description", []string{"add", "--name", "Beach"}, service.ErrDescriptionRequired},
		{"no image", []string{"add", "--name", "Beach", "--description", "Sunny"}, service.ErrImageRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(serviceMocks.MockSpotService)
			_, err := run(t, svc, tt.args...)
			assert.ErrorIs(t, err, tt.want)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestDelete_RefetchesAfterDelete(t *testing.T) {
	svc := new(serviceMocks.MockSpotService)
	svc.On("Delete", mock.Anything, "Beach").Return(nil).Once()
	svc.On("List", mock.Anything).Return(&service.SpotListResult{Items: []model.Spot{}}, nil).Once()

	out, err := run(t, svc, "delete", "Beach")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 spots)")
	svc.AssertExpectations(t)
}

func TestDelete_Failure(t *testing.T) {
	svc := new(serviceMocks.MockSpotService)
	svc.On("Delete", mock.Anything, "Beach").Return(errors.New("delete spot: unavailable")).Once()

	_, err := run(t, svc, "delete", "Beach")
	assert.EqualError(t, err, "delete spot: unavailable")
	svc.AssertNotCalled(t, "List", mock.Anything)
}

func TestDelete_RequiresName(t *testing.T) {
	_, err := run(t, new(serviceMocks.MockSpotService), "delete")
	assert.Error(t, err)
}
