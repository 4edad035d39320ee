package dto

// LoginReq は/login-checkエンドポイントのリクエストボディを表します。
// 入力の存在チェックは行わず、未入力のメールアドレスは単に未登録として扱われます。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRes is returned with 200 after a successful login.
type LoginRes struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
