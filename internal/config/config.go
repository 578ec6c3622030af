package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	Auth     Auth     `envPrefix:"AUTH_"`
	Checkout Checkout `envPrefix:"CHECKOUT_"`
	Evidence Evidence `envPrefix:"EVIDENCE_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET,required"`
	// claim value that grants access to the operator routes
	StaffRole string `env:"STAFF_ROLE" envDefault:"staff"`
}

type Checkout struct {
	CodePrefix string `env:"CODE_PREFIX" envDefault:"KH"`
	CodeLength int    `env:"CODE_LENGTH" envDefault:"10"`
	// attempts before order-code generation gives up and the
	// checkout transaction is aborted
	CodeAttempts int `env:"CODE_ATTEMPTS" envDefault:"5"`
}

type Evidence struct {
	Dir string `env:"DIR" envDefault:"./uploads/payment_proofs"`
}
