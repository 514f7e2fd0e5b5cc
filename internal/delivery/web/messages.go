// messages.go contains user-facing texts shown by the web pages.

package web

// Flash categories.
const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashInfo    = "info"
)

// Flash messages.
const (
	msgRegistered         = "Đăng ký thành công! Vui lòng đăng nhập."
	msgUsernameTaken      = "Tên đăng nhập đã tồn tại!"
	msgPasswordTooLong    = "Mật khẩu quá dài (tối đa 72 byte)."
	msgFieldsRequired     = "Vui lòng nhập tên đăng nhập và mật khẩu."
	msgInvalidCredentials = "Đăng nhập thất bại. Vui lòng kiểm tra lại tên đăng nhập và mật khẩu."
	msgLoginRequired      = "Vui lòng đăng nhập để truy cập trang này."
	msgLoggedOut          = "Bạn đã đăng xuất."
)

// Error pages.
const (
	msgTopicNotFound = "Không tìm thấy chủ đề này."
	msgPageNotFound  = "Không tìm thấy trang."
	msgInternalError = "Đã xảy ra lỗi. Vui lòng thử lại sau."
)

const msgNoTopic = "Không rõ"
