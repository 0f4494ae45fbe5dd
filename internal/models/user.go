package models

// RoleAdmin роль администратора маркетплейса
const RoleAdmin = "admin"

// User представляет пользователя маркетплейса в том виде, в котором его отдает backend
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsActive  bool   `json:"isActive"`
}

// IsAdmin проверяет административную роль пользователя
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session представляет текущую клиентскую сессию.
// Token и User всегда устанавливаются и очищаются вместе.
type Session struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"-"`
}

// IsEmpty возвращает true для анонимной сессии
func (s *Session) IsEmpty() bool {
	return s == nil || s.Token == "" || s.User == nil
}

// Clone копирует сессию вместе с пользователем
func (s Session) Clone() Session {
	if s.User == nil {
		return Session{Token: s.Token}
	}
	user := *s.User
	return Session{Token: s.Token, User: &user}
}
