package suggest

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/endracle/priceninja/internal/pricing"
)

func TestBuildPromptSubstitutesInputsInOrder(t *testing.T) {
	in := pricing.Inputs{
		ProductDescription: "Hand-poured soy candle",
		BasePrice:          280,
		PackagingCost:      30.5,
		DeliveryCharge:     80,
		NumberOfProducts:   12,
		DesiredProfit:      150.25,
		GatewayFeePercent:  2,
	}

	prompt, err := BuildPrompt(in)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "You are a pricing strategy expert."))

	lines := []string{
		"Product Description: Hand-poured soy candle",
		"Base Price: 280",
		"Packaging Cost: 30.5",
		"Delivery Charge: 80",
		"Number of Products: 12",
		"Desired Profit (whole batch): 150.25",
	}
	last := -1
	for _, line := range lines {
		idx := strings.Index(prompt, line)
		require.GreaterOrEqual(t, idx, 0, "prompt is missing %q", line)
		assert.Greater(t, idx, last, "%q is out of order", line)
		last = idx
	}
	assert.NotContains(t, prompt, "Gateway")
}

func TestRequestReturnsSuggestionUnchanged(t *testing.T) {
	reply := "  Consider a tiered price:\n- 550 for single units\n"
	var gotPrompt string
	gen := GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return reply, nil
	})

	out := NewRequester(gen, zap.NewNop()).Request(context.Background(), pricing.Defaults())

	assert.True(t, out.Success)
	assert.Equal(t, reply, out.Suggestion)
	assert.Empty(t, out.Error)
	assert.Contains(t, gotPrompt, "Product Description: A high-quality custom t-shirt.")
}

func TestRequestWrapsTransportFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	gen := GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("dial tcp: connection refused")
	})

	out := NewRequester(gen, zap.New(core)).Request(context.Background(), pricing.Defaults())

	assert.False(t, out.Success)
	assert.Empty(t, out.Suggestion)
	assert.Equal(t, "Failed to get AI suggestion. dial tcp: connection refused", out.Error)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "AI suggestion failed", logs.All()[0].Message)
}

func TestRequestTreatsBlankReplyAsFailure(t *testing.T) {
	gen := GeneratorFunc(func(context.Context, string) (string, error) {
		return " \n\t", nil
	})

	out := NewRequester(gen, nil).Request(context.Background(), pricing.Defaults())

	assert.False(t, out.Success)
	assert.Equal(t, failurePrefix+ErrEmptySuggestion.Error(), out.Error)
}

func TestRequestRecoversFromGeneratorPanic(t *testing.T) {
	gen := GeneratorFunc(func(context.Context, string) (string, error) {
		panic("malformed response")
	})

	var out Outcome
	require.NotPanics(t, func() {
		out = NewRequester(gen, nil).Request(context.Background(), pricing.Defaults())
	})
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "malformed response")
}

func TestRequestWithoutGeneratorFails(t *testing.T) {
	out := NewRequester(nil, nil).Request(context.Background(), pricing.Defaults())

	assert.False(t, out.Success)
	assert.Equal(t, "Failed to get AI suggestion. suggestion service is not configured", out.Error)
}

func TestRequestPassesCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		return "", ctx.Err()
	})

	out := NewRequester(gen, nil).Request(ctx, pricing.Defaults())

	assert.False(t, out.Success)
	assert.Contains(t, out.Error, context.Canceled.Error())
}

func TestRequestIsSafeForConcurrentCallers(t *testing.T) {
	gen := GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		return prompt[strings.Index(prompt, "Number of Products"):], nil
	})
	r := NewRequester(gen, nil)

	var wg sync.WaitGroup
	outs := make([]Outcome, 8)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := pricing.Defaults()
			in.NumberOfProducts = i + 1
			outs[i] = r.Request(context.Background(), in)
		}(i)
	}
	wg.Wait()

	for i, out := range outs {
		require.True(t, out.Success)
		assert.True(t, strings.HasPrefix(out.Suggestion, "Number of Products: "+strconv.Itoa(i+1)+"\n"))
	}
}

func TestNewGeminiGeneratorRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), GeminiConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

