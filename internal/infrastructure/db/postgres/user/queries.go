package user

const (
	SelectUsers = `
		SELECT id, name, email, phone, password_hash, role, product_refs::text[], created_at, updated_at
		FROM users
		ORDER BY created_at, id
		LIMIT 50 OFFSET ( ($1 - 1) * 50 )
	`
	SelectUserByID = `
		SELECT id, name, email, phone, password_hash, role, product_refs::text[], created_at, updated_at
		FROM users
		WHERE id = $1
	`
	SelectUserByEmail = `
		SELECT id, name, email, phone, password_hash, role, product_refs::text[], created_at, updated_at
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (name, email, phone, password_hash, role, product_refs)
		VALUES ($1, $2, $3, $4, $5, $6::uuid[])
		RETURNING
		  id, name, email, phone, password_hash, role, product_refs::text[], created_at, updated_at
	`
	UpdateUserByID = `
		UPDATE users
		SET name = $1,
		    email = $2,
		    phone = $3,
		    password_hash = $4,
		    role = $5,
		    product_refs = $6::uuid[],
		    updated_at = now()
		WHERE id = $7
		RETURNING
		  id, name, email, phone, password_hash, role, product_refs::text[], created_at, updated_at
	`
)
