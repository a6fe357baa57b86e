package repository

import "errors"

// 見つからないときに各リポジトリが返す共通エラー
var ErrNotFound = errors.New("not found")
