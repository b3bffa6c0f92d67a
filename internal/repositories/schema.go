package repositories

// UsersTableSQLite, testler ve yerel geliştirme için users tablosu.
const UsersTableSQLite = `CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	avatar TEXT
)`
