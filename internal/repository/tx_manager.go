package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Users() UserRepository
	AuthTokens() AuthTokenRepository
	Barks() BarkRepository
	Sniffs() SniffRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// ログイン/リフレッシュの「全削除→再発行」やsniffの加算はこの中で行う。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
