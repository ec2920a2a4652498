package shotloader

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type coilFactorEntry struct {
	Channel   string  `db:"ChannelName"`
	OneOverNA float64 `db:"OneOverNA"`
}

// FactorTableFromDB reads the B-dot coil factors valid for the given shot.
// The hardware database keeps one row per coil and validity range, so a
// recalibration shows up here without a new binary.
func FactorTableFromDB(db *sqlx.DB, shot int) (*FactorTable, error) {
	query := "SELECT ChannelName, OneOverNA FROM BdotCoils WHERE MinShot <= %d and MaxShot >= %d"
	query = fmt.Sprintf(query, shot, shot)

	if configuration.Verbosity > 0 {
		logger.Info("Reading B-dot coil factors from database", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}

	factors := make(map[string]float64)
	for rows.Next() {
		result := coilFactorEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		factors[result.Channel] = result.OneOverNA
	}
	return NewFactorTable(factors), nil
}
