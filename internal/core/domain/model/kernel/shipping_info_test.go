package kernel_test

import (
	"testing"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShippingInfo(t *testing.T) {
	t.Run("should use the explicit region", func(t *testing.T) {
		info, err := kernel.NewShippingInfo(" Ann Lee ", "+1 555 0100", "12 Main St, Springfield", " North ")

		require.NoError(t, err)
		require.NoError(t, info.Validate())
		assert.Equal(t, "Ann Lee", info.ReceiverName())
		assert.Equal(t, "north", info.Region())
		assert.True(t, info.InRegion("NORTH"))
		assert.False(t, info.InRegion("springfield"))
	})

	t.Run("should derive region from the last address segment", func(t *testing.T) {
		info, err := kernel.NewShippingInfo("Ann Lee", "+1 555 0100", "12 Main St, Springfield ,  ", "")

		require.NoError(t, err)
		assert.Equal(t, "springfield", info.Region())
	})

	t.Run("single segment address becomes the region", func(t *testing.T) {
		info, err := kernel.NewShippingInfo("Ann Lee", "+1 555 0100", "12 Main St", "")

		require.NoError(t, err)
		assert.Equal(t, "12 main st", info.Region())

		info, err = kernel.NewShippingInfo("Ann Lee", "+1 555 0100", ",", "")
		require.NoError(t, err)
		assert.Empty(t, info.Region())
		assert.False(t, info.InRegion(""))
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := kernel.NewShippingInfo("", " ", "", "north")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "receiverName")
		assert.Contains(t, err.Error(), "receiverPhone")
		assert.Contains(t, err.Error(), "address")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		require.ErrorIs(t, kernel.ShippingInfo{}.Validate(), kernel.ErrShippingInfoIsNotConstructed)
	})
}
