package database

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// SupabaseClient Supabaseクライアントのラッパー
type SupabaseClient struct {
	Client *supabase.Client
	url    string
}

// NewSupabaseClient 新しいSupabaseクライアントを作成
func NewSupabaseClient(supabaseURL, supabaseKey string) (*SupabaseClient, error) {
	if supabaseURL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if supabaseKey == "" {
		return nil, fmt.Errorf("supabase key is required")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize supabase client: %w", err)
	}

	return &SupabaseClient{
		Client: client,
		url:    supabaseURL,
	}, nil
}

// GetClient Supabaseクライアントを取得
func (sc *SupabaseClient) GetClient() *supabase.Client {
	return sc.Client
}

// URL 接続先のURL
func (sc *SupabaseClient) URL() string {
	return sc.url
}

// HealthCheck クライアントが初期化済みか確認
func (sc *SupabaseClient) HealthCheck() error {
	if sc == nil || sc.Client == nil {
		return fmt.Errorf("supabase client is not initialized")
	}
	return nil
}
