package validator

import (
	"log"

	"consultbr_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", enumRule(func(s string) bool { return models.UserRole(s).IsValid() }))
	mustRegister("is-user-status", enumRule(func(s string) bool { return models.UserStatus(s).IsValid() }))
	mustRegister("is-business-stage", enumRule(func(s string) bool { return models.BusinessStage(s).IsValid() }))
	mustRegister("is-project-status", enumRule(func(s string) bool { return models.ProjectStatus(s).IsValid() }))
	mustRegister("is-proposal-status", enumRule(func(s string) bool { return models.ProposalStatus(s).IsValid() }))
	mustRegister("is-transaction-status", enumRule(func(s string) bool { return models.TransactionStatus(s).IsValid() }))
	mustRegister("is-favorite-target", enumRule(func(s string) bool { return models.FavoriteTarget(s).IsValid() }))

	// 'is-proposal-box': раздел "мои предложения"
	mustRegister("is-proposal-box", enumRule(func(s string) bool { return s == "sent" || s == "received" }))
}

// enumRule - пустые значения пропускаем, для них есть 'required'.
// Работает и для указателей: валидатор разыменовывает их сам.
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}
