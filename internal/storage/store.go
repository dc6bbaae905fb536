package storage

// TokenStore 安全持久化单个 bearer 凭证
// TokenStore securely persists a single bearer credential
type TokenStore interface {
	// Token 返回存储的凭证，不存在时返回空串
	// Token returns the stored credential; empty when absent
	Token() (string, error)

	// SaveToken 覆盖写入凭证 / SaveToken overwrites the credential
	SaveToken(token string) error

	// DeleteToken 清除凭证；凭证本就不存在不算错误
	// DeleteToken purges the credential; absence is not an error
	DeleteToken() error

	Close() error
}
