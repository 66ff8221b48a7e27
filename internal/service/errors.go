package service

import "errors"

// Messages are Portuguese because they are shown verbatim by the frontend.
var (
	ErrValidation         = errors.New("dados inválidos")
	ErrConflict           = errors.New("email já cadastrado")
	ErrInvalidCode        = errors.New("código de verificação inválido")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUnauthenticated    = errors.New("autenticação necessária")
	ErrForbidden          = errors.New("sem permissão")
	ErrEmailNotVerified   = errors.New("email ainda não verificado")
	ErrSelfDelete         = errors.New("não é possível excluir o seu próprio usuário enquanto logado")
	ErrCapacityExceeded   = errors.New("as vagas para este evento já estão esgotadas")
	ErrNotFound           = errors.New("não encontrado")
	ErrDelivery           = errors.New("falha ao enviar o e-mail")
)
