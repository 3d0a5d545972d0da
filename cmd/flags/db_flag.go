package flags

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smzarrabimmp/cms/cmd/internal/cryptox"
	"github.com/smzarrabimmp/cms/cmd/internal/ioutilx"
	"github.com/smzarrabimmp/cms/internal/sqlx"
	"github.com/smzarrabimmp/cms/logx"
)

// DBDriverInMemory selects the in-memory store instead of a SQL backend.
// It is handled by the commands themselves; Connect rejects it.
const DBDriverInMemory sqlx.DBDriver = "in-memory"

var errInMemoryConnect = errors.New("Connect() unsupported for in-memory driver")

type DBFlag struct {
	Driver   sqlx.DBDriver `long:"driver" description:"Database driver to use for SQL backend (e.g. mysql, in-memory)" required:"true"`
	Host     string        `long:"host" description:"Host for SQL backend"`
	Port     int           `long:"port" description:"Port for SQL backend"`
	Schema   string        `long:"schema" description:"Database name to use for connecting to SQL backend"`
	Username string        `long:"username" description:"Username to use for connecting to SQL backend"`
	Password string        `long:"password" description:"Password to use for connecting to SQL backend"`

	TLS    SQLTLSFlag    `group:"TLS" namespace:"tls"`
	Tuning SQLTuningFlag `group:"Tuning" namespace:"tuning"`
}

type SQLTLSFlag struct {
	Required bool                   `long:"required" description:"Require TLS connections to the SQL backend"`
	RootCAs  []ioutilx.FileOrString `long:"root-ca" description:"CA certificate(s) for TLS connection to the SQL backend"`
}

type SQLTuningFlag struct {
	ConnMaxLifetime int `long:"connection-max-lifetime" description:"Limit the lifetime in milliseconds of a SQL connection"`
}

func (o *DBFlag) IsInMemory() bool {
	return o.Driver == DBDriverInMemory
}

func (o *DBFlag) Connect(ctx context.Context, logger logx.Logger) (*sqlx.DB, error) {
	if o.IsInMemory() {
		return nil, errInMemoryConnect
	}

	if err := o.validate(); err != nil {
		return nil, err
	}

	logger = logger.WithData(
		logx.Data{Key: "db_driver", Value: o.Driver},
		logx.Data{Key: "db_host", Value: o.Host},
		logx.Data{Key: "db_port", Value: o.Port},
		logx.Data{Key: "db_schema", Value: o.Schema},
		logx.Data{Key: "db_username", Value: o.Username},
	)

	dbOpts := []sqlx.DBOption{
		sqlx.DBUsername(o.Username),
		sqlx.DBPassword(o.Password),
		sqlx.DBDatabaseName(o.Schema),
		sqlx.DBHost(o.Host),
		sqlx.DBPort(o.Port),
		sqlx.DBConnectionMaxLifetime(time.Duration(o.Tuning.ConnMaxLifetime) * time.Millisecond),
	}

	if len(o.TLS.RootCAs) != 0 {
		tlsLogger := logger.WithName("create-sql-root-ca-pool")

		var certs [][]byte
		for _, cert := range o.TLS.RootCAs {
			b, bErr := cert.Bytes(ioutilx.OS, ioutilx.IOReader)
			if bErr != nil {
				tlsLogger.Error(failedToReadFile, bErr)
				return nil, bErr
			}

			certs = append(certs, b)
		}

		rootCAPool, err := cryptox.NewCertPool(certs...)
		if err != nil {
			tlsLogger.Error(failedToParseTLSCredentials, err)
			return nil, err
		}

		dbOpts = append(dbOpts, sqlx.DBRootCAPool(rootCAPool))
	} else if o.TLS.Required {
		dbOpts = append(dbOpts, sqlx.DBTLSRequired(true))
	}

	conn, err := sqlx.Connect(o.Driver, dbOpts...)
	if err != nil {
		logger.Error(failedToOpenSQLConnection, err)
		return nil, err
	}

	return conn, nil
}

func (o *DBFlag) validate() error {
	if o.Host == "" {
		return errMissingParameter("host")
	}
	if o.Port == 0 {
		return errMissingParameter("port")
	}
	if o.Schema == "" {
		return errMissingParameter("schema")
	}
	if o.Username == "" {
		return errMissingParameter("username")
	}

	return nil
}

func errMissingParameter(name string) error {
	return fmt.Errorf("the required %s parameter was not specified; see --help", name)
}
