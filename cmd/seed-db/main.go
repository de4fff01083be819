// Command seed-db populates the delivery database with generated sample data.
// Parent tables (restaurants, products, customers, drivers) are independent
// and seed concurrently; dependent tables follow in FK order.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/domiflash/delivery-api/internal/repository"
)

const rowsPerTable = 30

func main() {
	var (
		databaseURL  string
		productsFile string
		orderCount   int
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&productsFile, "products-file", "", "optional product catalog JSON (plain or .gz)")
	flag.IntVar(&orderCount, "orders", rowsPerTable, "number of orders to seed")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, productsFile, orderCount); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, productsFile string, orderCount int) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	s := &seeder{pool: pool, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}

	// Independent parent tables seed concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.seedRestaurants(gctx) })
	g.Go(func() error { return s.seedProducts(gctx, productsFile) })
	g.Go(func() error { return s.seedCustomers(gctx) })
	g.Go(func() error { return s.seedDrivers(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.seedMenus(ctx); err != nil {
		return err
	}
	if err := s.seedMotorcycles(ctx); err != nil {
		return err
	}
	return s.seedOrders(ctx, orderCount)
}

type seeder struct {
	pool *pgxpool.Pool
	rnd  *rand.Rand

	restaurantIDs []string
	productIDs    []string
	customerIDs   []string
	driverIDs     []string
	motorcycleIDs []string
	menus         []seedMenu
	productPrices map[string]decimal.Decimal
}

type seedMenu struct {
	id    string
	price decimal.Decimal
}

type catalogProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
}

var (
	companyWords  = []string{"Dorado", "Sabor", "Monte", "Criollo", "Fuego", "Verde", "Andino", "Costa"}
	venueKinds    = []string{"Restaurant", "Café", "Grill", "Bistro", "Eatery"}
	dishWords     = []string{"Burger", "Pizza", "Salad", "Sandwich", "Pasta", "Steak", "Fish"}
	dishAdjs      = []string{"Crispy", "Smoked", "Garden", "House", "Spicy", "Golden", "Classic"}
	categories    = []string{"Main Course", "Appetizer", "Dessert", "Beverage", "Side Dish"}
	personFirst   = []string{"Laura", "Carlos", "Ana", "Juan", "Sofía", "Miguel", "Valentina", "Andrés", "Camila", "Diego"}
	personLast    = []string{"Pérez", "García", "Rodríguez", "Martínez", "López", "González", "Torres", "Ramírez"}
	motoModels    = []string{"Honda CB190", "Yamaha FZ25", "Suzuki GN125", "Kawasaki Z400", "KTM Duke 200", "Bajaj Pulsar"}
	orderStatuses = []string{"pending", "in_progress", "delivered", "cancelled"}
)

func (s *seeder) pastDate(maxDays int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -s.rnd.Intn(maxDays))
}

func (s *seeder) personName() string {
	return personFirst[s.rnd.Intn(len(personFirst))] + " " + personLast[s.rnd.Intn(len(personLast))]
}

func (s *seeder) phone() string {
	return fmt.Sprintf("+57 3%02d %03d %04d", s.rnd.Intn(100), s.rnd.Intn(1000), s.rnd.Intn(10000))
}

func (s *seeder) seedRestaurants(ctx context.Context) error {
	slog.Info("seeding restaurants", slog.Int("count", rowsPerTable))

	for range rowsPerTable {
		id := uuid.New().String()
		name := companyWords[s.rnd.Intn(len(companyWords))] + " " + venueKinds[s.rnd.Intn(len(venueKinds))]
		addr := fmt.Sprintf("Calle %d #%d-%d", s.rnd.Intn(150)+1, s.rnd.Intn(90)+1, s.rnd.Intn(99)+1)

		_, err := s.pool.Exec(ctx,
			`INSERT INTO restaurants (id, name, address, phone) VALUES ($1, $2, $3, $4)`,
			id, name, addr, s.phone())
		if err != nil {
			return errors.Wrap(err, "insert restaurant")
		}
		s.restaurantIDs = append(s.restaurantIDs, id)
	}
	return nil
}

func (s *seeder) seedProducts(ctx context.Context, productsFile string) error {
	s.productPrices = make(map[string]decimal.Decimal)

	if productsFile != "" {
		return s.seedProductsFromFile(ctx, productsFile)
	}

	slog.Info("seeding products", slog.Int("count", rowsPerTable))

	for range rowsPerTable {
		id := uuid.New().String()
		name := dishAdjs[s.rnd.Intn(len(dishAdjs))] + " " + dishWords[s.rnd.Intn(len(dishWords))]
		price := decimal.NewFromFloat(5 + s.rnd.Float64()*45).Round(2)

		_, err := s.pool.Exec(ctx,
			`INSERT INTO products (id, name, description, price, category) VALUES ($1, $2, $3, $4, $5)`,
			id, name, "Freshly prepared "+strings.ToLower(name)+".", price, categories[s.rnd.Intn(len(categories))])
		if err != nil {
			return errors.Wrap(err, "insert product")
		}
		s.productIDs = append(s.productIDs, id)
		s.productPrices[id] = price
	}
	return nil
}

// seedProductsFromFile loads a product catalog from a JSON file, transparently
// decompressing gzip input.
func (s *seeder) seedProductsFromFile(ctx context.Context, path string) error {
	slog.Info("reading product catalog", slog.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open products file")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrap(err, "open gzip reader")
		}
		defer gz.Close()
		r = gz
	}

	var products []catalogProduct
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return errors.Wrap(err, "parse products JSON")
	}

	slog.Info("seeding products from catalog", slog.Int("count", len(products)))

	for _, p := range products {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := s.pool.Exec(ctx,
			`INSERT INTO products (id, name, description, price, category) VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (id) DO UPDATE SET name = $2, description = $3, price = $4, category = $5`,
			id, p.Name, p.Description, p.Price, p.Category)
		if err != nil {
			return errors.Wrapf(err, "upsert product %s", id)
		}
		s.productIDs = append(s.productIDs, id)
		s.productPrices[id] = p.Price
	}
	return nil
}

func (s *seeder) seedCustomers(ctx context.Context) error {
	slog.Info("seeding customers", slog.Int("count", rowsPerTable))

	for range rowsPerTable {
		id := uuid.New().String()
		name := s.personName()
		email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + fmt.Sprintf("%d@example.com", s.rnd.Intn(1000))

		_, err := s.pool.Exec(ctx,
			`INSERT INTO customers (id, name, email, phone) VALUES ($1, $2, $3, $4)`,
			id, name, email, s.phone())
		if err != nil {
			return errors.Wrap(err, "insert customer")
		}
		s.customerIDs = append(s.customerIDs, id)
	}
	return nil
}

func (s *seeder) seedDrivers(ctx context.Context) error {
	slog.Info("seeding drivers", slog.Int("count", rowsPerTable))

	for range rowsPerTable {
		id := uuid.New().String()

		_, err := s.pool.Exec(ctx,
			`INSERT INTO drivers (id, name, phone) VALUES ($1, $2, $3)`,
			id, s.personName(), s.phone())
		if err != nil {
			return errors.Wrap(err, "insert driver")
		}
		s.driverIDs = append(s.driverIDs, id)
	}
	return nil
}

// seedMenus links every restaurant to a random sample of products with a
// price varied around the product price.
func (s *seeder) seedMenus(ctx context.Context) error {
	slog.Info("seeding menus", slog.Int("restaurants", len(s.restaurantIDs)))

	for _, rid := range s.restaurantIDs {
		n := min(5+s.rnd.Intn(6), len(s.productIDs))
		for _, pi := range s.rnd.Perm(len(s.productIDs))[:n] {
			pid := s.productIDs[pi]
			id := uuid.New().String()
			price := s.productPrices[pid].Mul(decimal.NewFromFloat(0.9 + s.rnd.Float64()*0.3)).Round(2)

			_, err := s.pool.Exec(ctx,
				`INSERT INTO menus (id, restaurant_id, product_id, price) VALUES ($1, $2, $3, $4)`,
				id, rid, pid, price)
			if err != nil {
				return errors.Wrap(err, "insert menu")
			}
			s.menus = append(s.menus, seedMenu{id: id, price: price})
		}
	}
	return nil
}

func (s *seeder) seedMotorcycles(ctx context.Context) error {
	slog.Info("seeding motorcycles", slog.Int("count", rowsPerTable))

	for range rowsPerTable {
		id := uuid.New().String()
		plate := fmt.Sprintf("%c%c%c-%03d",
			'A'+rune(s.rnd.Intn(26)), 'A'+rune(s.rnd.Intn(26)), 'A'+rune(s.rnd.Intn(26)), s.rnd.Intn(1000))

		_, err := s.pool.Exec(ctx,
			`INSERT INTO motorcycles (id, driver_id, plate, model) VALUES ($1, $2, $3, $4)`,
			id, s.driverIDs[s.rnd.Intn(len(s.driverIDs))], plate, motoModels[s.rnd.Intn(len(motoModels))])
		if err != nil {
			return errors.Wrap(err, "insert motorcycle")
		}
		s.motorcycleIDs = append(s.motorcycleIDs, id)
	}
	return nil
}

func (s *seeder) seedOrders(ctx context.Context, count int) error {
	slog.Info("seeding orders", slog.Int("count", count))

	for range count {
		m := s.menus[s.rnd.Intn(len(s.menus))]
		qty := 1 + s.rnd.Intn(5)

		// Roughly 70% of orders have a motorcycle assigned.
		var motorcycleID *string
		if s.rnd.Float64() < 0.7 {
			motorcycleID = &s.motorcycleIDs[s.rnd.Intn(len(s.motorcycleIDs))]
		}

		_, err := s.pool.Exec(ctx,
			`INSERT INTO orders (id, customer_id, menu_id, motorcycle_id, quantity, total_price, status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New().String(),
			s.customerIDs[s.rnd.Intn(len(s.customerIDs))],
			m.id,
			motorcycleID,
			qty,
			m.price.Mul(decimal.NewFromInt(int64(qty))),
			orderStatuses[s.rnd.Intn(len(orderStatuses))],
			s.pastDate(90),
		)
		if err != nil {
			return errors.Wrap(err, "insert order")
		}
	}
	return nil
}
