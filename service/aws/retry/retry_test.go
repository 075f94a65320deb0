package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottled(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "throttling code",
			err:  &smithy.GenericAPIError{Code: "Throttling", Message: "rate exceeded"},
			want: true,
		},
		{
			name: "request limit exceeded",
			err:  &smithy.GenericAPIError{Code: "RequestLimitExceeded", Message: "rate exceeded"},
			want: true,
		},
		{
			name: "wrapped throttling code",
			err:  errors.Join(errors.New("DescribeInstances"), &smithy.GenericAPIError{Code: "ThrottlingException"}),
			want: true,
		},
		{
			name: "other api error",
			err:  &smithy.GenericAPIError{Code: "AccessDenied", Message: "no"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Throttled(tt.err))
		})
	}
}

func TestDoRetriesThrottle(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return &smithy.GenericAPIError{Code: "Throttling"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoFailsFastOnOtherErrors(t *testing.T) {
	calls := 0
	wantErr := errors.New("boom")
	err := Do(context.Background(), func() error {
		calls++
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}
