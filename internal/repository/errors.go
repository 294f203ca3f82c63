package repository

import "errors"

var (
	//レコードが見つからない
	ErrNotFound = errors.New("not found")

	//直列化の衝突。トランザクション全体をやり直す必要がある。
	ErrConflict = errors.New("transaction conflict")

	//ユーザーが見つかりませんを統一
	ErrUserNotFound = errors.New("user not found")
)
