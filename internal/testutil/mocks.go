package testutil

import (
	"context"
	"errors"

	"voice-assistant/internal/service/email"
	"voice-assistant/internal/service/llm"
	"voice-assistant/internal/service/music"
	"voice-assistant/internal/service/news"
	"voice-assistant/internal/service/weather"
)

// MockLLMProvider is a mock implementation of llm.Provider for testing.
type MockLLMProvider struct {
	CompleteFunc func(ctx context.Context, utterance string, history []llm.Message, imageBase64 string) (string, error)
}

func (m *MockLLMProvider) Complete(ctx context.Context, utterance string, history []llm.Message, imageBase64 string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, utterance, history, imageBase64)
	}
	return "", errors.New("not implemented")
}

// MockWeatherClient is a mock weather collaborator.
type MockWeatherClient struct {
	GetWeatherFunc func(ctx context.Context, location string) weather.Weather
}

func (m *MockWeatherClient) GetWeather(ctx context.Context, location string) weather.Weather {
	if m.GetWeatherFunc != nil {
		return m.GetWeatherFunc(ctx, location)
	}
	return weather.Weather{Description: "Weather data unavailable", Location: location}
}

// MockNewsClient is a mock news collaborator.
type MockNewsClient struct {
	TopHeadlinesFunc func(ctx context.Context, category, country string) ([]news.Article, error)
}

func (m *MockNewsClient) TopHeadlines(ctx context.Context, category, country string) ([]news.Article, error) {
	if m.TopHeadlinesFunc != nil {
		return m.TopHeadlinesFunc(ctx, category, country)
	}
	return nil, errors.New("not implemented")
}

// MockMusicClient is a mock music collaborator.
type MockMusicClient struct {
	LookupTrackFunc func(ctx context.Context, query string) (*music.Track, error)
}

func (m *MockMusicClient) LookupTrack(ctx context.Context, query string) (*music.Track, error) {
	if m.LookupTrackFunc != nil {
		return m.LookupTrackFunc(ctx, query)
	}
	return nil, errors.New("not implemented")
}

// MockEmailSender is a mock email registry.
type MockEmailSender struct {
	SendFunc func(ctx context.Context, providerName string, msg email.Message) (*email.Result, error)
}

func (m *MockEmailSender) Send(ctx context.Context, providerName string, msg email.Message) (*email.Result, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, providerName, msg)
	}
	return nil, errors.New("not implemented")
}
