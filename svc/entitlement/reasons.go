package entitlement

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/dmitrymomot/storykit/pkg/period"
	"github.com/dmitrymomot/storykit/pkg/tier"
)

// Message keys. English text is the key.
const (
	msgPaymentWallDisabled = "payment wall disabled"
	msgDevBypass           = "dev bypass enabled"
	msgWithinLimit         = "within plan limits"
	msgChildLimit          = "Child profile limit reached (%d/%d)."
	msgUnknownResource     = "unknown resource type"

	msgFreeChild     = "free.child"
	msgFreeCharacter = "free.character"
	msgFreeStory     = "free.story"

	msgPaidCharacterWeekly   = "paid.character.weekly"
	msgPaidCharacterMonthly  = "paid.character.monthly"
	msgPaidCharacterLifetime = "paid.character.lifetime"
	msgPaidStoryWeekly       = "paid.story.weekly"
	msgPaidStoryMonthly      = "paid.story.monthly"
	msgPaidStoryLifetime     = "paid.story.lifetime"
)

var freeKeys = map[Resource]string{
	Child:     msgFreeChild,
	Character: msgFreeCharacter,
	Story:     msgFreeStory,
}

var paidKeys = map[Resource]map[period.Period]string{
	Character: {
		period.Weekly:   msgPaidCharacterWeekly,
		period.Monthly:  msgPaidCharacterMonthly,
		period.Lifetime: msgPaidCharacterLifetime,
	},
	Story: {
		period.Weekly:   msgPaidStoryWeekly,
		period.Monthly:  msgPaidStoryMonthly,
		period.Lifetime: msgPaidStoryLifetime,
	},
}

var reasonCatalog = mustBuildCatalog()

func mustBuildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	en, es := language.English, language.Spanish

	var errs []error
	set := func(tag language.Tag, key string, msg ...catalog.Message) {
		errs = append(errs, b.Set(tag, key, msg...))
	}
	str := func(tag language.Tag, key, s string) {
		errs = append(errs, b.SetString(tag, key, s))
	}

	str(en, msgPaymentWallDisabled, "payment wall disabled")
	str(es, msgPaymentWallDisabled, "muro de pago desactivado")
	str(en, msgDevBypass, "dev bypass enabled")
	str(es, msgDevBypass, "omisión de desarrollo activada")
	str(en, msgWithinLimit, "within plan limits")
	str(es, msgWithinLimit, "dentro de los límites del plan")
	str(en, msgUnknownResource, "unknown resource type")
	str(es, msgUnknownResource, "tipo de recurso desconocido")
	str(en, msgChildLimit, "Child profile limit reached (%d/%d).")
	str(es, msgChildLimit, "Límite de perfiles infantiles alcanzado (%d/%d).")

	set(en, msgFreeChild, plural.Selectf(1, "%d",
		"one", "Free plan includes %d child profile. Upgrade to %s for unlimited child profiles.",
		"other", "Free plan includes %d child profiles. Upgrade to %s for unlimited child profiles."))
	set(es, msgFreeChild, plural.Selectf(1, "%d",
		"one", "El plan gratuito incluye %d perfil infantil. Mejora a %s para tener perfiles ilimitados.",
		"other", "El plan gratuito incluye %d perfiles infantiles. Mejora a %s para tener perfiles ilimitados."))
	set(en, msgFreeCharacter, plural.Selectf(1, "%d",
		"one", "Free plan includes %d character total. Upgrade to %s for more.",
		"other", "Free plan includes %d characters total. Upgrade to %s for more."))
	set(es, msgFreeCharacter, plural.Selectf(1, "%d",
		"one", "El plan gratuito incluye %d personaje en total. Mejora a %s para crear más.",
		"other", "El plan gratuito incluye %d personajes en total. Mejora a %s para crear más."))
	set(en, msgFreeStory, plural.Selectf(1, "%d",
		"one", "Free plan includes %d story total. Upgrade to %s for more.",
		"other", "Free plan includes %d stories total. Upgrade to %s for more."))
	set(es, msgFreeStory, plural.Selectf(1, "%d",
		"one", "El plan gratuito incluye %d historia en total. Mejora a %s para crear más.",
		"other", "El plan gratuito incluye %d historias en total. Mejora a %s para crear más."))

	str(en, msgPaidCharacterWeekly, "You've used %d/%d characters this week. Your limit resets next week.")
	str(es, msgPaidCharacterWeekly, "Has usado %d/%d personajes esta semana. Tu límite se reinicia la próxima semana.")
	str(en, msgPaidCharacterMonthly, "You've used %d/%d characters this month. Your limit resets next month.")
	str(es, msgPaidCharacterMonthly, "Has usado %d/%d personajes este mes. Tu límite se reinicia el próximo mes.")
	str(en, msgPaidCharacterLifetime, "You've used %d/%d characters on your plan.")
	str(es, msgPaidCharacterLifetime, "Has usado %d/%d personajes de tu plan.")
	str(en, msgPaidStoryWeekly, "You've used %d/%d stories this week. Your limit resets next week.")
	str(es, msgPaidStoryWeekly, "Has usado %d/%d historias esta semana. Tu límite se reinicia la próxima semana.")
	str(en, msgPaidStoryMonthly, "You've used %d/%d stories this month. Your limit resets next month.")
	str(es, msgPaidStoryMonthly, "Has usado %d/%d historias este mes. Tu límite se reinicia el próximo mes.")
	str(en, msgPaidStoryLifetime, "You've used %d/%d stories on your plan.")
	str(es, msgPaidStoryLifetime, "Has usado %d/%d historias de tu plan.")

	if err := errors.Join(errs...); err != nil {
		panic(fmt.Sprintf("entitlement: reason catalog: %v", err))
	}
	return b
}

func printer(ctx context.Context) *message.Printer {
	return message.NewPrinter(LanguageFromContext(ctx), message.Catalog(reasonCatalog))
}

// upgradeTierName is the display name of the tier that lifts free limits.
func upgradeTierName() string {
	return cases.Title(language.English).String(string(tier.Creator))
}

// denialReason builds the tier-appropriate message for a denied creation.
func denialReason(ctx context.Context, res Resource, t tier.Tier, p period.Period, count int64, limit tier.Limit) (string, ReasonCode) {
	pr := printer(ctx)

	if !t.IsPaid() {
		return pr.Sprintf(freeKeys[res], int(limit), upgradeTierName()), ReasonFreeLimitReached
	}
	if res == Child {
		return pr.Sprintf(msgChildLimit, count, int64(limit)), ReasonLimitReached
	}

	key, ok := paidKeys[res][p]
	if !ok {
		key = paidKeys[res][period.Lifetime]
	}
	code := ReasonPeriodLimitReached
	if p == period.Lifetime {
		code = ReasonLimitReached
	}
	return pr.Sprintf(key, count, int64(limit)), code
}

func staticReason(ctx context.Context, code ReasonCode) string {
	pr := printer(ctx)
	switch code {
	case ReasonPaymentWallDisabled:
		return pr.Sprintf(msgPaymentWallDisabled)
	case ReasonDevBypass:
		return pr.Sprintf(msgDevBypass)
	case ReasonUnknownResource:
		return pr.Sprintf(msgUnknownResource)
	default:
		return pr.Sprintf(msgWithinLimit)
	}
}
