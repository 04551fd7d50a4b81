package deployment

import (
	"fmt"
	"strconv"
)

// ContractEntry is one variable a production env file has to define.
type ContractEntry struct {
	Key         string
	Description string
	// Validate, when set, checks the template value.
	Validate func(value string) error
}

func equals(expected string) func(string) error {
	return func(value string) error {
		if value != expected {
			return fmt.Errorf("must be %q, is %q", expected, value)
		}
		return nil
	}
}

func positiveInt(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number, is %q", value)
	}
	return nil
}

// ProductionContract lists what the prod template must carry.
var ProductionContract = []ContractEntry{
	{Key: "KEYO_DATABASE_POSTGRES_HOST", Description: "database host"},
	{Key: "KEYO_DATABASE_POSTGRES_DATABASE", Description: "database name"},
	{Key: "KEYO_DATABASE_POSTGRES_USERNAME", Description: "database user"},
	{Key: "KEYO_DATABASE_POSTGRES_PASSWORD", Description: "database password"},
	{Key: "KEYO_DATABASE_POSTGRES_SSLMODE", Description: "database tls mode", Validate: equals("require")},

	{Key: "KEYO_CACHE_MODE", Description: "cache backend", Validate: equals("redis")},
	{Key: "KEYO_CACHE_REDIS_HOST", Description: "redis host"},

	{Key: "KEYO_MAIL_MODE", Description: "mail transport", Validate: equals("smtp")},
	{Key: "KEYO_MAIL_HOST", Description: "smtp relay"},
	{Key: "KEYO_MAIL_APIKEY", Description: "email provider key"},
	{Key: "KEYO_MAIL_FROMADDRESS", Description: "sender address"},

	{Key: "KEYO_PUSH_MODE", Description: "push transport", Validate: equals("fcm")},
	{Key: "KEYO_PUSH_PROJECTID", Description: "firebase project"},
	{Key: "KEYO_PUSH_CREDENTIALSJSON", Description: "firebase service account"},

	{Key: "KEYO_FRONTEND_EXTERNALURL", Description: "frontend origin"},
	{Key: "KEYO_SERVER_ALLOWEDORIGINS", Description: "cors allow-list"},
	{Key: "KEYO_SERVER_EXTERNALURL", Description: "public api url"},

	{Key: "KEYO_AUTH_JWTSIGNINGKEY", Description: "profile token signing key"},
	{Key: "KEYO_AUTH_SERVICEKEYHASH", Description: "internal api key hash"},

	{Key: "KEYO_SECURITY_SSLREDIRECT", Description: "forced tls redirect", Validate: equals("true")},
	{Key: "KEYO_SECURITY_HSTSSECONDS", Description: "strict transport security", Validate: positiveInt},
	{Key: "KEYO_SECURITY_SECURECOOKIES", Description: "secure cookies", Validate: equals("true")},

	{Key: "KEYO_LOGGING_DIR", Description: "log directory"},

	{Key: "API_HOST", Description: "public hostname for the proxy and certificate"},
	{Key: "LETSENCRYPT_EMAIL", Description: "acme account email"},
}

// PlatformContract lists the settings prod carries on behalf of the rest of
// the platform. Keyo passes them through untouched.
var PlatformContract = []ContractEntry{
	{Key: "TWILIO_ACCOUNT_SID", Description: "primary sms provider account"},
	{Key: "TWILIO_AUTH_TOKEN", Description: "primary sms provider token"},
	{Key: "TWILIO_PHONE_NUMBER", Description: "primary sms sender number"},
	{Key: "MSG91_AUTH_KEY", Description: "fallback sms provider key"},
	{Key: "MSG91_TEMPLATE_ID", Description: "fallback sms otp template"},

	{Key: "AWS_ACCESS_KEY_ID", Description: "object storage access key"},
	{Key: "AWS_SECRET_ACCESS_KEY", Description: "object storage secret"},
	{Key: "AWS_STORAGE_BUCKET_NAME", Description: "object storage bucket"},

	{Key: "RAZORPAY_KEY_ID", Description: "payment gateway key id"},
	{Key: "RAZORPAY_KEY_SECRET", Description: "payment gateway key secret"},
	{Key: "RAZORPAY_WEBHOOK_SECRET", Description: "payment gateway webhook secret"},

	{Key: "STATIC_URL", Description: "static asset url prefix"},
	{Key: "STATIC_ROOT", Description: "static asset directory"},
	{Key: "MEDIA_URL", Description: "uploaded media url prefix"},
	{Key: "MEDIA_ROOT", Description: "uploaded media directory"},
}

// CheckContract returns one problem per missing or invalid contract entry.
func CheckContract(file string, template EnvTemplate, contract []ContractEntry) []Problem {
	var problems []Problem
	for _, entry := range contract {
		value, ok := template[entry.Key]
		if !ok {
			problems = append(problems, Problem{
				File:    file,
				Message: fmt.Sprintf("missing %s (%s)", entry.Key, entry.Description),
			})
			continue
		}

		if entry.Validate == nil {
			continue
		}

		err := entry.Validate(value)
		if err != nil {
			problems = append(problems, Problem{
				File:    file,
				Message: fmt.Sprintf("%s %s", entry.Key, err.Error()),
			})
		}
	}
	return problems
}
